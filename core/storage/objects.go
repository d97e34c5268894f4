package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/minio/minio-go/v7"
)

// PutJSON marshals v and uploads it under objectName with a JSON content type.
func PutJSON(ctx context.Context, client Client, bucket, objectName string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", objectName, err)
	}

	_, err = client.PutObject(ctx, bucket, objectName, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", objectName, err)
	}
	return nil
}

// ListKeys returns every object key under prefix, sorted ascending.
func ListKeys(ctx context.Context, client Client, bucket, prefix string) ([]string, error) {
	var keys []string
	for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
		}
		keys = append(keys, obj.Key)
	}
	sort.Strings(keys)
	return keys, nil
}

// RemoveKeys deletes the given keys in one batch call and reports the first failure.
func RemoveKeys(ctx context.Context, client Client, bucket string, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	objectsCh := make(chan minio.ObjectInfo, len(keys))
	for _, key := range keys {
		objectsCh <- minio.ObjectInfo{Key: key}
	}
	close(objectsCh)

	var firstErr error
	for rErr := range client.RemoveObjects(ctx, bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if firstErr == nil && rErr.Err != nil {
			firstErr = fmt.Errorf("failed to remove %s: %w", rErr.ObjectName, rErr.Err)
		}
	}
	return firstErr
}
