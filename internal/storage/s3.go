package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// s3API is the subset of the S3 client the storage layer uses. Kept small so
// tests can substitute a fake.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObjects(ctx context.Context, in *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

// S3Options configure the S3-compatible backend. Endpoint is optional; when
// set (MinIO, Supabase storage) path-style addressing is used and public
// URLs are formed under it.
type S3Options struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// S3Storage implements ObjectStorage on an S3-compatible service.
type S3Storage struct {
	api      s3API
	endpoint string
	region   string
}

func NewS3Storage(ctx context.Context, opts S3Options) (*S3Storage, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Storage{api: client, endpoint: strings.TrimRight(opts.Endpoint, "/"), region: opts.Region}, nil
}

func (s *S3Storage) Upload(ctx context.Context, bucket, path string, body io.Reader, opts UploadObjectOptions) error {
	in := &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &path,
		Body:   body,
	}
	if opts.ContentType != "" {
		in.ContentType = &opts.ContentType
	}
	if !opts.Upsert {
		// Conditional write: fail if an object already exists at this path.
		in.IfNoneMatch = aws.String("*")
	}

	if _, err := s.api.PutObject(ctx, in); err != nil {
		return fmt.Errorf("put object %s/%s: %w", bucket, path, err)
	}
	return nil
}

func (s *S3Storage) PublicURL(bucket, path string) string {
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", s.endpoint, bucket, path)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, s.region, path)
}

func (s *S3Storage) List(ctx context.Context, bucket, prefix, search string) ([]ObjectInfo, error) {
	p := prefix
	if p != "" && !strings.HasSuffix(p, "/") {
		p += "/"
	}

	out, err := s.api.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: &bucket,
		Prefix: &p,
	})
	if err != nil {
		return nil, fmt.Errorf("list %s/%s: %w", bucket, prefix, err)
	}

	var infos []ObjectInfo
	for _, obj := range out.Contents {
		if obj.Key == nil {
			continue
		}
		name := strings.TrimPrefix(*obj.Key, p)
		if search != "" && !strings.Contains(name, search) {
			continue
		}
		info := ObjectInfo{Name: name}
		if obj.Size != nil {
			info.Size = *obj.Size
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (s *S3Storage) Remove(ctx context.Context, bucket string, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	objects := make([]types.ObjectIdentifier, 0, len(paths))
	for i := range paths {
		objects = append(objects, types.ObjectIdentifier{Key: &paths[i]})
	}

	_, err := s.api.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: &bucket,
		Delete: &types.Delete{Objects: objects},
	})
	if err != nil {
		return fmt.Errorf("remove %d objects from %s: %w", len(paths), bucket, err)
	}
	return nil
}
