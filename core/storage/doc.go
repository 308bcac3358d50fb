// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a small interface so render scenarios can
// be kept in AWS S3 or a self-hosted MinIO instance, and so tests can swap in the
// testify mock from core/storage/mocks.
//
// # Operations
//
//   - EnsureBucket: Creates the scenario bucket on first start.
//   - ReadObject: Downloads an object, mapping missing keys to ErrObjectNotFound.
//   - WriteObject: Uploads an object with a content type.
//   - ListKeys: Lists object keys under a prefix.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	data, err := storage.ReadObject(ctx, client, cfg.Storage.Bucket, "scenarios/swap.yaml")
package storage
