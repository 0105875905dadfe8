package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

const publicURLFormat = "https://storage.googleapis.com/%s/%s"

// CloudStorageClient is Client backed by a google cloud storage bucket
type CloudStorageClient struct {
	BucketName string
	Client     *storage.Client
}

// NewCloudStorageClient use application default credentials
func NewCloudStorageClient(ctx context.Context, bucketName string) (*CloudStorageClient, error) {
	if bucketName == "" {
		return nil, errors.New("bucket name is empty")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud storage client: %w", err)
	}
	return &CloudStorageClient{
		BucketName: bucketName,
		Client:     client,
	}, nil
}

// UploadFile write data to key, replacing any existing object
func (c *CloudStorageClient) UploadFile(ctx context.Context, key string, data io.Reader) error {
	wc := c.Client.Bucket(c.BucketName).Object(key).NewWriter(ctx)
	if _, err := io.Copy(wc, data); err != nil {
		_ = wc.Close()
		return fmt.Errorf("failed to write data to object: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close object writer: %w", err)
	}
	return nil
}

// PublicURL confirm key exist and return its public URL
func (c *CloudStorageClient) PublicURL(ctx context.Context, key string) (string, error) {
	if _, err := c.Client.Bucket(c.BucketName).Object(key).Attrs(ctx); err != nil {
		return "", fmt.Errorf("failed to resolve object %s: %w", key, err)
	}
	return c.PublicURLFor(key), nil
}

// ListObjects return every object whose name start with prefix
func (c *CloudStorageClient) ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	it := c.Client.Bucket(c.BucketName).Objects(ctx, &storage.Query{Prefix: prefix})

	var objects []ObjectInfo
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		objects = append(objects, ObjectInfo{
			Name:    attrs.Name,
			Size:    attrs.Size,
			Created: attrs.Created,
		})
	}
	return objects, nil
}

// DeleteObject remove key from bucket
func (c *CloudStorageClient) DeleteObject(ctx context.Context, key string) error {
	if err := c.Client.Bucket(c.BucketName).Object(key).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}

// PublicURLFor return public URL form of key without checking it exists
func (c *CloudStorageClient) PublicURLFor(key string) string {
	return fmt.Sprintf(publicURLFormat, c.BucketName, key)
}

// Close release underlying client
func (c *CloudStorageClient) Close() error {
	return c.Client.Close()
}
