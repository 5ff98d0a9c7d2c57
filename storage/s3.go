// Package storage keeps the source well file PDFs in S3-compatible object
// storage and hands out presigned download links.
package storage

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// PDFStore is a client for the well file PDF bucket.
type PDFStore struct {
	client *minio.Client
	bucket string
}

// NewPDFStore connects to the MinIO endpoint configured via MINIO_ENDPOINT,
// MINIO_ACCESS_KEY, MINIO_SECRET_KEY and WELLS_PDF_BUCKET. Returns an error
// when any of them is missing so the server can run without PDF storage.
func NewPDFStore() (*PDFStore, error) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	bucket := os.Getenv("WELLS_PDF_BUCKET")
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	if endpoint == "" || accessKey == "" || secretKey == "" || bucket == "" {
		return nil, fmt.Errorf("missing one or more required environment variables: MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY, WELLS_PDF_BUCKET")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create MinIO client: %w", err)
	}

	return &PDFStore{client: client, bucket: bucket}, nil
}

// EnsureBucket creates the PDF bucket if it does not exist yet.
func (s *PDFStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
	}
	return nil
}

// Upload stores a well file PDF under its filename.
func (s *PDFStore) Upload(ctx context.Context, filename, localPath string) error {
	_, err := s.client.FPutObject(ctx, s.bucket, filename, localPath, minio.PutObjectOptions{
		ContentType: "application/pdf",
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", filename, err)
	}
	return nil
}

// UploadDir stores every *.pdf under dir, keyed by filename, and returns how
// many uploads succeeded. Individual failures are logged and skipped so one
// bad file does not abort a bulk upload.
func (s *PDFStore) UploadDir(ctx context.Context, dir string) (int, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil {
		return 0, fmt.Errorf("list %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return 0, fmt.Errorf("no pdf files in %s", dir)
	}

	uploaded := 0
	for _, path := range paths {
		name := filepath.Base(path)
		if err := s.Upload(ctx, name, path); err != nil {
			log.Printf("skipping %s: %v", name, err)
			continue
		}
		uploaded++
	}
	return uploaded, nil
}

// PresignedURL returns a short-lived download link for a well file PDF.
func (s *PDFStore) PresignedURL(ctx context.Context, filename string) (string, error) {
	reqParams := make(url.Values)
	reqParams.Set("response-content-type", "application/pdf")
	u, err := s.client.PresignedGetObject(ctx, s.bucket, filename, 15*time.Minute, reqParams)
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", filename, err)
	}
	return u.String(), nil
}
