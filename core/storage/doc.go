// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface so the rest of the site can be
// tested against core/storage/mocks. Both AWS S3 and self-hosted MinIO are supported.
//
// Helpers on top of Client:
//   - PutJSON: upload a JSON document (sync snapshots).
//   - ListKeys: list keys under a prefix, sorted.
//   - RemoveKeys: batch delete (snapshot retention).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
