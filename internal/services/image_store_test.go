package services

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLocalImageStore_Open(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "toolify"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "toolify", "shot.png"), []byte("png"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "secret.txt"), []byte("nope"), 0o644))

	store := NewLocalImageStore(root, "toolify")

	img, err := store.Open(context.Background(), "shot.png")
	require.NoError(t, err)
	defer img.Body.Close()
	body, err := io.ReadAll(img.Body)
	require.NoError(t, err)
	assert.Equal(t, "png", string(body))
	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, int64(3), img.Size)

	for _, name := range []string{"missing.jpg", "../secret.txt", "..", "a/b.png", `..\secret.txt`, ""} {
		_, err := store.Open(context.Background(), name)
		assert.ErrorIs(t, err, ErrImageNotFound, name)
	}

	assert.NoError(t, store.Ping(context.Background()))
	assert.Error(t, NewLocalImageStore(root, "absent").Ping(context.Background()))
}

func TestImageContentType(t *testing.T) {
	assert.Equal(t, "image/jpeg", imageContentType("a.jpg"))
	assert.Equal(t, "image/png", imageContentType("a.PNG"))
	assert.Equal(t, "image/jpeg", imageContentType("noext"))
}

type MockObjectGetter struct {
	mock.Mock
}

func (m *MockObjectGetter) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error) {
	args := m.Called(ctx, bucketName, objectName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*minio.Object), args.Error(1)
}

func (m *MockObjectGetter) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	args := m.Called(ctx, bucketName, objectName)
	return args.Get(0).(minio.ObjectInfo), args.Error(1)
}

func (m *MockObjectGetter) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func TestMinioImageStore_MissingObject(t *testing.T) {
	client := new(MockObjectGetter)
	store := &minioImageStore{client: client, bucket: "screenshots", prefix: "toolify"}
	ctx := context.Background()

	client.On("StatObject", ctx, "screenshots", "toolify/gone.png").
		Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404}).Once()

	_, err := store.Open(ctx, "gone.png")
	assert.ErrorIs(t, err, ErrImageNotFound)

	_, err = store.Open(ctx, "../etc/passwd")
	assert.ErrorIs(t, err, ErrImageNotFound)

	client.AssertExpectations(t)
}

func TestMinioImageStore_StatFailure(t *testing.T) {
	client := new(MockObjectGetter)
	store := &minioImageStore{client: client, bucket: "screenshots"}
	ctx := context.Background()

	client.On("StatObject", ctx, "screenshots", "shot.png").
		Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "AccessDenied", StatusCode: 403}).Once()

	_, err := store.Open(ctx, "shot.png")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrImageNotFound)
}

func TestMinioImageStore_Ping(t *testing.T) {
	client := new(MockObjectGetter)
	store := &minioImageStore{client: client, bucket: "screenshots"}
	ctx := context.Background()

	client.On("BucketExists", ctx, "screenshots").Return(true, nil).Once()
	assert.NoError(t, store.Ping(ctx))

	client.On("BucketExists", ctx, "screenshots").Return(false, nil).Once()
	assert.Error(t, store.Ping(ctx))

	client.AssertExpectations(t)
}
