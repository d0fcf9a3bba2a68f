package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/voyageapp/voyage-client/internal/registration"
)

func (a *App) ListPets(ctx context.Context) error {
	list, err := a.petService.List(ctx)
	if err != nil {
		fmt.Println(a.tr.T("pets.load_failed"))
		return err
	}
	if len(list) == 0 {
		fmt.Println(a.tr.T("pets.empty"))
		return nil
	}
	for _, p := range list {
		fmt.Printf("%s  %-12s %s/%s  born %s\n", p.ID, p.Name, p.Type, p.Gender, p.Birthday)
	}
	return nil
}

func (a *App) ShowPet(ctx context.Context, id string) error {
	p, err := a.petService.Get(ctx, id)
	if err != nil {
		fmt.Println(a.tr.T("pets.load_failed"))
		return err
	}
	fmt.Printf("Name:     %s\n", p.Name)
	fmt.Printf("Calls me: %s\n", p.OwnerTitle)
	fmt.Printf("Type:     %s (%s)\n", p.Type, p.Gender)
	fmt.Printf("Birthday: %s\n", p.Birthday)
	if p.AvatarURL != "" {
		fmt.Printf("Avatar:   %s\n", p.AvatarURL)
	}
	return nil
}

// RegisterPet walks the multi-step registration flow, resuming a saved
// draft if one exists. Progress is persisted after each step, so the user
// can exit at any prompt and pick up later.
func (a *App) RegisterPet(ctx context.Context) error {
	draft, err := a.registration.Resume(ctx)
	if err != nil {
		return err
	}
	if draft == nil {
		if draft, err = a.registration.Start(ctx); err != nil {
			return err
		}
	}

	fmt.Println(a.tr.T("registration.title"))
	for !draft.Complete() {
		cancelled, err := a.promptStep(ctx, draft)
		if err != nil {
			return err
		}
		if cancelled {
			fmt.Println("Progress saved. Run 'register' to continue.")
			return nil
		}
		if err := a.registration.Advance(ctx, draft); err != nil {
			fmt.Println(err)
		}
	}

	pet, err := a.registration.Submit(ctx, draft)
	if err != nil {
		fmt.Println(a.tr.T("error.server"))
		return err
	}
	a.petService.InvalidateList()
	fmt.Println(a.tr.T("pets.registered", pet.Name))
	return nil
}

// promptStep collects the current step's fields. Returns cancelled=true when
// the user entered an empty line to stop for now.
func (a *App) promptStep(ctx context.Context, draft *registration.Draft) (bool, error) {
	switch draft.Step {
	case registration.StepName:
		name, err := GetSimpleText(a.reader, a.tr.T("registration.step_name"), os.Stdout)
		if err != nil || name == "" {
			return true, err
		}
		draft.Name = name
	case registration.StepOwnerTitle:
		title, err := GetSimpleText(a.reader, a.tr.T("registration.step_owner"), os.Stdout)
		if err != nil || title == "" {
			return true, err
		}
		draft.OwnerTitle = title
	case registration.StepTypeGender:
		fmt.Println(a.tr.T("registration.step_type"))
		petType, err := GetChoice(a.reader, "Type", os.Stdout, "DOG", "CAT")
		if err != nil {
			return true, nil
		}
		gender, err := GetChoice(a.reader, "Gender", os.Stdout, "BOY", "GIRL")
		if err != nil {
			return true, nil
		}
		draft.Type, draft.Gender = petType, gender
	case registration.StepBirthday:
		day, err := GetSimpleText(a.reader, a.tr.T("registration.step_birthday")+" (YYYY-MM-DD)", os.Stdout)
		if err != nil || day == "" {
			return true, err
		}
		parsed, err := time.Parse("2006-01-02", day)
		if err != nil {
			fmt.Println("Please use YYYY-MM-DD.")
			return false, nil
		}
		draft.Birthday = parsed.UTC().Format(time.RFC3339)
	case registration.StepAvatar:
		fmt.Println(a.tr.T("registration.step_avatar"))
		if err := a.uploadAvatar(ctx, draft); err != nil {
			fmt.Println(a.tr.T("upload.failed", err))
		}
	}
	return false, nil
}

func (a *App) uploadAvatar(ctx context.Context, draft *registration.Draft) error {
	file, err := a.uploads.PickImage(ctx, avatarUploadOptions())
	if err != nil {
		return err
	}
	if file == nil {
		return nil // avatar is optional
	}

	res := a.uploads.UploadFile(ctx, *file, avatarUploadOptions())
	if !res.Success {
		return fmt.Errorf("%s", res.Error)
	}
	draft.AvatarPath = res.FilePath
	draft.AvatarURL = res.PublicURL
	return nil
}
