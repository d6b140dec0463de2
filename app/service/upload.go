package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/vibast-solutions/ms-go-portfolio/app/types"
	appconfig "github.com/vibast-solutions/ms-go-portfolio/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const (
	ProfileFolder = "profile"
	rootFolder    = "portfolio"
)

var (
	ErrEmptyFile           = errors.New("file is empty")
	ErrFileTooLarge        = errors.New("file exceeds the maximum upload size")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrInvalidPublicID     = errors.New("invalid publicId")
	ErrInvalidFolder       = errors.New("folder may only contain lowercase letters, digits, '/', '_' and '-'")

	allowedContentTypes = map[string]string{
		"image/jpeg":      ".jpg",
		"image/png":       ".png",
		"image/gif":       ".gif",
		"image/webp":      ".webp",
		"image/svg+xml":   ".svg",
		"application/pdf": ".pdf",
	}

	folderPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9/_-]*$`)

	loadDefaultAWSConfig = config.LoadDefaultConfig
)

type objectStore interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type UploadService interface {
	Upload(ctx context.Context, folder, filename, contentType string, size int64, body io.Reader) (*types.UploadResponse, error)
	Delete(ctx context.Context, publicID string) error
}

type uploadService struct {
	store objectStore
	cfg   appconfig.StorageConfig
	now   func() time.Time
}

func NewUploadService(store objectStore, cfg appconfig.StorageConfig) UploadService {
	return &uploadService{store: store, cfg: cfg, now: time.Now}
}

// NewS3Client builds an S3 client for AWS or any S3 compatible endpoint.
func NewS3Client(ctx context.Context, cfg appconfig.StorageConfig) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	}), nil
}

func (s *uploadService) Upload(ctx context.Context, folder, filename, contentType string, size int64, body io.Reader) (*types.UploadResponse, error) {
	if size <= 0 {
		return nil, ErrEmptyFile
	}
	if s.cfg.MaxUploadBytes > 0 && size > s.cfg.MaxUploadBytes {
		return nil, fmt.Errorf("%w (%d bytes)", ErrFileTooLarge, s.cfg.MaxUploadBytes)
	}

	contentType = normalizeContentType(contentType)
	defaultExt, ok := allowedContentTypes[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, contentType)
	}

	folder = strings.Trim(strings.ToLower(folder), "/")
	if folder == "" {
		folder = "uploads"
	}
	if !folderPattern.MatchString(folder) || strings.Contains(folder, "..") {
		return nil, ErrInvalidFolder
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || len(ext) > 6 {
		ext = defaultExt
	}

	d := s.now()
	key := path.Join(rootFolder, folder, fmt.Sprintf("%d/%02d", d.Year(), d.Month()), uuid.New().String()+ext)

	_, err := s.store.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", key, err)
	}

	return &types.UploadResponse{
		URL:         s.publicURL(key),
		PublicID:    key,
		Size:        size,
		ContentType: contentType,
	}, nil
}

func (s *uploadService) Delete(ctx context.Context, publicID string) error {
	publicID = strings.TrimPrefix(publicID, "/")
	if !strings.HasPrefix(publicID, rootFolder+"/") || strings.Contains(publicID, "..") {
		return ErrInvalidPublicID
	}

	_, err := s.store.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(publicID),
	})
	return err
}

func (s *uploadService) publicURL(key string) string {
	if s.cfg.PublicBaseURL != "" {
		return s.cfg.PublicBaseURL + "/" + key
	}
	if s.cfg.Endpoint != "" {
		return strings.TrimRight(s.cfg.Endpoint, "/") + "/" + s.cfg.Bucket + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}

func normalizeContentType(contentType string) string {
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
