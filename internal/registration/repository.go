package registration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/voyageapp/voyage-client/internal/common"
	"github.com/voyageapp/voyage-client/internal/registration/migrations"
)

// Repository stores drafts. Latest returns common.ErrNotFound when no draft
// exists.
type Repository interface {
	Save(ctx context.Context, d *Draft) error
	GetByID(ctx context.Context, id string) (*Draft, error)
	Latest(ctx context.Context) (*Draft, error)
	Delete(ctx context.Context, id string) error
}

// InitDatabase opens the local SQLite database and applies migrations.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return db, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// SQLiteRepository implements Repository on the local database.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Save(ctx context.Context, d *Draft) error {
	query := `INSERT INTO pet_drafts (id, step, name, owner_title, type, gender, birthday, avatar_path, avatar_url, updated_at)
			values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET step = excluded.step,
				name = excluded.name,
				owner_title = excluded.owner_title,
				type = excluded.type,
				gender = excluded.gender,
				birthday = excluded.birthday,
				avatar_path = excluded.avatar_path,
				avatar_url = excluded.avatar_url,
				updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.Step, d.Name, d.OwnerTitle, d.Type, d.Gender, d.Birthday, d.AvatarPath, d.AvatarURL, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert draft: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*Draft, error) {
	query := `select id, step, name, owner_title, type, gender, birthday, avatar_path, avatar_url, updated_at
			from pet_drafts where id = ?`
	return r.scanDraft(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteRepository) Latest(ctx context.Context) (*Draft, error) {
	query := `select id, step, name, owner_title, type, gender, birthday, avatar_path, avatar_url, updated_at
			from pet_drafts order by updated_at desc limit 1`
	return r.scanDraft(r.db.QueryRowContext(ctx, query))
}

func (r *SQLiteRepository) scanDraft(row *sql.Row) (*Draft, error) {
	d := &Draft{}
	err := row.Scan(&d.ID, &d.Step, &d.Name, &d.OwnerTitle, &d.Type, &d.Gender,
		&d.Birthday, &d.AvatarPath, &d.AvatarURL, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return d, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `delete from pet_drafts where id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return common.ErrNotFound
	}
	return nil
}
