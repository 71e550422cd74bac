package cache

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"path"
	"strings"

	storage_go "github.com/supabase-community/storage-go"
)

// ObjectClient is the subset of the Supabase storage client the object
// store needs. *storage_go.Client satisfies it.
type ObjectClient interface {
	UploadFile(bucketId string, relativePath string, data io.Reader, fileOptions ...storage_go.FileOptions) (storage_go.FileUploadResponse, error)
	DownloadFile(bucketId string, filePath string, urlOptions ...storage_go.UrlOptions) ([]byte, error)
}

// ObjectStore keeps values as objects at {prefix}/{key}{ext} in a bucket.
type ObjectStore struct {
	client ObjectClient
	bucket string
	prefix string
	ext    string
}

func NewObjectStore(client ObjectClient, bucket, prefix, ext string) *ObjectStore {
	return &ObjectStore{client: client, bucket: bucket, prefix: prefix, ext: ext}
}

func (s *ObjectStore) objectPath(key string) string {
	return path.Join(s.prefix, key+s.ext)
}

func (s *ObjectStore) Location(key string) string {
	return s.bucket + "/" + s.objectPath(key)
}

func (s *ObjectStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.DownloadFile(s.bucket, s.objectPath(key))
	if err != nil {
		if isObjectNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *ObjectStore) Put(ctx context.Context, key string, data []byte) error {
	upsert := true
	_, err := s.client.UploadFile(s.bucket, s.objectPath(key), bytes.NewReader(data), storage_go.FileOptions{
		Upsert: &upsert,
	})
	return err
}

// isObjectNotFound reports a storage API miss. The API answers a missing
// object with status 404, or with 400 and a not_found body.
func isObjectNotFound(err error) bool {
	var se *storage_go.StorageError
	if !errors.As(err, &se) {
		return false
	}
	if se.Status == http.StatusNotFound {
		return true
	}
	msg := strings.ToLower(se.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "not_found")
}
