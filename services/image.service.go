package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// Image stores the profile images in a minio bucket
type Image struct {
	M       *minio.Client
	Bucket  string
	Timeout time.Duration
}

// Put uploads the image and returns the bucket/object path of it
func (i *Image) Put(ctx context.Context, name, contentType string, size int64, body io.Reader) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, i.Timeout)
	defer cancel()

	object := fmt.Sprintf("profile/%s%s", uuid.New().String(), strings.ToLower(filepath.Ext(name)))
	_, err := i.M.PutObject(ctx, i.Bucket, object, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s", i.Bucket, object), nil
}

// Remove deletes an image that was stored with Put
func (i *Image) Remove(ctx context.Context, path string) error {
	ctx, cancel := context.WithTimeout(ctx, i.Timeout)
	defer cancel()

	object := strings.TrimPrefix(path, i.Bucket+"/")
	return i.M.RemoveObject(ctx, i.Bucket, object, minio.RemoveObjectOptions{})
}
