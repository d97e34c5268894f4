package storage_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"site-manager/core/storage"
	"site-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPutJSON(t *testing.T) {
	mockClient := new(mocks.Client)

	var uploaded map[string]int
	mockClient.On("PutObject", mock.Anything, "site", "a/b.json", mock.Anything, int64(7), mock.MatchedBy(func(opts minio.PutObjectOptions) bool {
		return opts.ContentType == "application/json"
	})).Run(func(args mock.Arguments) {
		body, _ := io.ReadAll(args.Get(3).(io.Reader))
		_ = json.Unmarshal(body, &uploaded)
	}).Return(minio.UploadInfo{}, nil)

	err := storage.PutJSON(context.Background(), mockClient, "site", "a/b.json", map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1}, uploaded)
	mockClient.AssertExpectations(t)
}

func TestPutJSON_UploadError(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("PutObject", mock.Anything, "site", "x.json", mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("boom"))

	err := storage.PutJSON(context.Background(), mockClient, "site", "x.json", []int{1})
	assert.ErrorContains(t, err, "boom")
}

func TestListKeys(t *testing.T) {
	mockClient := new(mocks.Client)
	ch := make(chan minio.ObjectInfo, 3)
	ch <- minio.ObjectInfo{Key: "p/3.json"}
	ch <- minio.ObjectInfo{Key: "p/1.json"}
	ch <- minio.ObjectInfo{Key: "p/2.json"}
	close(ch)
	mockClient.On("ListObjects", mock.Anything, "site", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
		return opts.Prefix == "p/" && opts.Recursive
	})).Return((<-chan minio.ObjectInfo)(ch))

	keys, err := storage.ListKeys(context.Background(), mockClient, "site", "p/")
	require.NoError(t, err)
	assert.Equal(t, []string{"p/1.json", "p/2.json", "p/3.json"}, keys)
}

func TestListKeys_Error(t *testing.T) {
	mockClient := new(mocks.Client)
	ch := make(chan minio.ObjectInfo, 1)
	ch <- minio.ObjectInfo{Err: errors.New("denied")}
	close(ch)
	mockClient.On("ListObjects", mock.Anything, "site", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

	_, err := storage.ListKeys(context.Background(), mockClient, "site", "p/")
	assert.ErrorContains(t, err, "denied")
}

func TestRemoveKeys(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		mockClient := new(mocks.Client)
		assert.NoError(t, storage.RemoveKeys(context.Background(), mockClient, "site", nil))
		mockClient.AssertNotCalled(t, "RemoveObjects", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ReportsFailure", func(t *testing.T) {
		mockClient := new(mocks.Client)
		errCh := make(chan minio.RemoveObjectError, 1)
		errCh <- minio.RemoveObjectError{ObjectName: "p/1.json", Err: errors.New("locked")}
		close(errCh)
		mockClient.On("RemoveObjects", mock.Anything, "site", mock.Anything, mock.Anything).
			Return((<-chan minio.RemoveObjectError)(errCh))

		err := storage.RemoveKeys(context.Background(), mockClient, "site", []string{"p/1.json"})
		assert.ErrorContains(t, err, "p/1.json")
	})
}
