package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/menucraft/backend/config"
)

// LogoStorage stores uploaded menu logos and returns the path the menu's
// logo_path field should carry.
type LogoStorage interface {
	Store(ctx context.Context, menuName, filename string, r io.Reader) (string, error)
}

// logoKey builds a unique-suffixed object name so a re-upload never
// overwrites the previous file. Orphaned files from replaced logos are left
// behind on purpose; the original system behaves the same way.
func logoKey(menuName, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("logos/%s-%s%s", menuName, uuid.NewString()[:8], ext)
}

// LocalLogoStorage writes logos to a directory on local disk. It is the
// default backend.
type LocalLogoStorage struct {
	baseDir string
}

func NewLocalLogoStorage(baseDir string) (*LocalLogoStorage, error) {
	if err := os.MkdirAll(filepath.Join(baseDir, "logos"), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalLogoStorage{baseDir: baseDir}, nil
}

func (s *LocalLogoStorage) Store(ctx context.Context, menuName, filename string, r io.Reader) (string, error) {
	key := logoKey(menuName, filename)
	path := filepath.Join(s.baseDir, filepath.FromSlash(key))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create logo file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write logo file: %w", err)
	}

	log.WithFields(log.Fields{"menu": menuName, "path": path}).Info("Logo stored on disk")
	return "/" + key, nil
}

// S3LogoStorage uploads logos to an S3 bucket, for deployments where local
// disk is not durable.
type S3LogoStorage struct {
	s3cfg *config.S3Config
}

func NewS3LogoStorage(s3cfg *config.S3Config) *S3LogoStorage {
	return &S3LogoStorage{s3cfg: s3cfg}
}

func (s *S3LogoStorage) Store(ctx context.Context, menuName, filename string, r io.Reader) (string, error) {
	key := logoKey(menuName, filename)

	_, err := s.s3cfg.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.s3cfg.BucketName),
		Key:    aws.String(key),
		Body:   r,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload logo to S3: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3cfg.BucketName, key)
	log.WithFields(log.Fields{"menu": menuName, "key": key}).Info("Logo uploaded to S3")
	return url, nil
}
