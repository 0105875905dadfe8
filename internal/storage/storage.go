// Package storage is the object storage boundary holding resumes and company logos.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// ObjectInfo describe one stored object
type ObjectInfo struct {
	Name    string
	Size    int64
	Created time.Time
}

// Client is what handlers need from object storage. Upload and URL resolution are separate
// calls, an uploaded object is not reachable until PublicURL succeed.
type Client interface {
	UploadFile(ctx context.Context, key string, data io.Reader) error
	PublicURL(ctx context.Context, key string) (string, error)
	ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error)
	DeleteObject(ctx context.Context, key string) error
}

// Kind of uploaded object, part of object key
const (
	KindResume = "resume"
	KindLogo   = "logo"
)

// ObjectKey build "{owner}-{kind}-{unix millis}{ext}". ext keeps its leading dot.
func ObjectKey(owner uuid.UUID, kind string, ext string, at time.Time) string {
	return fmt.Sprintf("%s-%s-%d%s", owner.String(), kind, at.UnixMilli(), ext)
}

// ResumeKey is ObjectKey for a candidate resume
func ResumeKey(candidateID uuid.UUID, ext string, at time.Time) string {
	return ObjectKey(candidateID, KindResume, ext, at)
}

// LogoKey is ObjectKey for a company logo
func LogoKey(companyID uuid.UUID, ext string, at time.Time) string {
	return ObjectKey(companyID, KindLogo, ext, at)
}

// UploadAndResolve upload data to key then resolve its public URL.
// URL resolution is not attempted when upload fail.
func UploadAndResolve(ctx context.Context, client Client, key string, data io.Reader) (string, error) {
	if err := client.UploadFile(ctx, key, data); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	url, err := client.PublicURL(ctx, key)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", key, err)
	}
	return url, nil
}
