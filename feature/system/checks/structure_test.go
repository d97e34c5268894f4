package checks

import (
	"context"
	"errors"
	"testing"

	"site-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func listing(keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		ch <- minio.ObjectInfo{Key: k}
	}
	close(ch)
	return ch
}

func TestCheckStructure(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "site").Return(true, nil)
	client.On("ListObjects", mock.Anything, "site", mock.MatchedBy(func(o minio.ListObjectsOptions) bool {
		return o.Prefix == "covers/"
	})).Return(listing("covers/440.jpg"))
	client.On("ListObjects", mock.Anything, "site", mock.MatchedBy(func(o minio.ListObjectsOptions) bool {
		return o.Prefix == "snapshots/"
	})).Return(listing())

	missing, err := CheckStructure(context.Background(), client, "site")
	require.NoError(t, err)
	assert.Equal(t, []string{"snapshots"}, missing)
}

func TestCheckStructure_BucketMissing(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "site").Return(false, nil)

	_, err := CheckStructure(context.Background(), client, "site")
	assert.ErrorContains(t, err, "bucket site does not exist")
}

func TestFixStructure(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "site", "snapshots/", mock.Anything, int64(0), mock.Anything).
		Return(minio.UploadInfo{}, nil)

	err := FixStructure(context.Background(), client, "site", zap.NewNop(), []string{"snapshots"})
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestFixStructure_Error(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "site", "covers/", mock.Anything, int64(0), mock.Anything).
		Return(minio.UploadInfo{}, errors.New("denied"))

	err := FixStructure(context.Background(), client, "site", zap.NewNop(), []string{"covers", "snapshots"})
	assert.ErrorContains(t, err, "failed to create folder covers")
	client.AssertNumberOfCalls(t, "PutObject", 1)
}
