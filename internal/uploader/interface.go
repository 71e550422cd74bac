// Package uploader publishes local recordings so the transcription provider
// can fetch them by URL.
package uploader

import "context"

// Uploader stores a local file under a remote key. Uploading a file whose
// content is already stored under key is a no-op.
type Uploader interface {
	Upload(ctx context.Context, localPath, key string) error
	PublicURL(key string) string
}
