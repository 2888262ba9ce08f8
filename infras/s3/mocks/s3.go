package mocks

import (
	"context"
	"mime/multipart"

	"haunters/infras/s3"
)

type s3Impl struct {
}

// UploadFile implements s3.S3.
func (s *s3Impl) UploadFile(_ context.Context, _, directory string, _ multipart.File, _ *multipart.FileHeader, fileName string) (string, error) {
	return s.PublicURL(directory, fileName), nil
}

// UploadFileBytes implements s3.S3.
func (s *s3Impl) UploadFileBytes(_ context.Context, _, directory, fileName, _ string, _ []byte) (string, error) {
	return s.PublicURL(directory, fileName), nil
}

// DeleteFile implements s3.S3.
func (s *s3Impl) DeleteFile(_ context.Context, _, _, _ string) error {
	return nil
}

// GetObjectNameFromURL implements s3.S3.
func (s *s3Impl) GetObjectNameFromURL(_, url string) string {
	return url
}

// PublicURL implements s3.S3.
func (s *s3Impl) PublicURL(directory, objectName string) string {
	return "https://storage.test/" + directory + "/" + objectName
}

func NewS3() s3.S3 {
	return &s3Impl{}
}
