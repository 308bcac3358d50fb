package storage_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"tree-reconciler/core/storage"
	"tree-reconciler/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReadObject(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "render", "scenarios/a.yaml", mock.Anything).
			Return(io.NopCloser(bytes.NewReader([]byte("name: a"))), nil)

		data, err := storage.ReadObject(context.Background(), client, "render", "scenarios/a.yaml")
		require.NoError(t, err)
		assert.Equal(t, "name: a", string(data))
	})

	t.Run("Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "render", "scenarios/nope.yaml", mock.Anything).
			Return(nil, minio.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."})

		_, err := storage.ReadObject(context.Background(), client, "render", "scenarios/nope.yaml")
		assert.ErrorIs(t, err, storage.ErrObjectNotFound)
	})

	t.Run("Failure", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "render", "k", mock.Anything).
			Return(nil, errors.New("connection reset"))

		_, err := storage.ReadObject(context.Background(), client, "render", "k")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, storage.ErrObjectNotFound)
	})
}

func TestWriteObject(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "render", "scenarios/a.yaml", mock.Anything, int64(7), mock.MatchedBy(func(o minio.PutObjectOptions) bool {
		return o.ContentType == "application/yaml"
	})).Return(minio.UploadInfo{}, nil)

	err := storage.WriteObject(context.Background(), client, "render", "scenarios/a.yaml", []byte("name: a"), "application/yaml")
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestListKeys(t *testing.T) {
	client := new(mocks.Client)
	ch := make(chan minio.ObjectInfo, 3)
	ch <- minio.ObjectInfo{Key: "scenarios/"}
	ch <- minio.ObjectInfo{Key: "scenarios/a.yaml"}
	ch <- minio.ObjectInfo{Key: "scenarios/b.yaml"}
	close(ch)
	client.On("ListObjects", mock.Anything, "render", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

	keys, err := storage.ListKeys(context.Background(), client, "render", "scenarios/")
	require.NoError(t, err)
	assert.Equal(t, []string{"scenarios/a.yaml", "scenarios/b.yaml"}, keys)
}
