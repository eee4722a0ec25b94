package services

import (
	"context"
	"fmt"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	Prefix    string // object key prefix, e.g. the image subdirectory
}

// objectGetter is the part of *minio.Client the image store needs
type objectGetter interface {
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	BucketExists(ctx context.Context, bucketName string) (bool, error)
}

type minioImageStore struct {
	client objectGetter
	bucket string
	prefix string
}

func NewMinioImageStore(opts MinioOptions) (ImageStore, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &minioImageStore{client: client, bucket: opts.Bucket, prefix: opts.Prefix}, nil
}

func (m *minioImageStore) objectName(filename string) string {
	if m.prefix == "" {
		return filename
	}
	return path.Join(m.prefix, filename)
}

func (m *minioImageStore) Open(ctx context.Context, filename string) (*Image, error) {
	if !validImageName(filename) {
		return nil, ErrImageNotFound
	}

	name := m.objectName(filename)
	info, err := m.client.StatObject(ctx, m.bucket, name, minio.StatObjectOptions{})
	if err != nil {
		if isMissingObject(err) {
			return nil, ErrImageNotFound
		}
		return nil, fmt.Errorf("stat object %s: %w", name, err)
	}

	obj, err := m.client.GetObject(ctx, m.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", name, err)
	}

	contentType := info.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = imageContentType(filename)
	}
	return &Image{Body: obj, ContentType: contentType, Size: info.Size}, nil
}

func (m *minioImageStore) Ping(ctx context.Context) error {
	found, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("bucket %s does not exist", m.bucket)
	}
	return nil
}

func isMissingObject(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket", "NotFound":
		return true
	}
	return false
}
