package uploader

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/podcast-flow/internal/logger"
	storage_go "github.com/supabase-community/storage-go"
)

// hashChunk is the read size used while hashing.
const hashChunk = 4096

// Bucket is the subset of the Supabase storage client used for uploads.
// *storage_go.Client satisfies it.
type Bucket interface {
	UploadFile(bucketId string, relativePath string, data io.Reader, fileOptions ...storage_go.FileOptions) (storage_go.FileUploadResponse, error)
	DownloadFile(bucketId string, filePath string, urlOptions ...storage_go.UrlOptions) ([]byte, error)
	GetPublicUrl(bucketId string, filePath string, urlOptions ...storage_go.UrlOptions) storage_go.SignedUrlResponse
}

type implSupabase struct {
	client Bucket
	bucket string
	logger logger.Logger
}

// NewSupabase creates an Uploader writing to a public Supabase bucket. The
// content hash of every object is kept in a "{key}.sha256" sidecar.
func NewSupabase(client Bucket, bucket string, log logger.Logger) Uploader {
	return &implSupabase{client: client, bucket: bucket, logger: log}
}

func (u *implSupabase) Upload(ctx context.Context, localPath, key string) error {
	hash, err := fileHash(localPath)
	if err != nil {
		return fmt.Errorf("hash %s: %w", localPath, err)
	}

	if remote, err := u.client.DownloadFile(u.bucket, sidecarKey(key)); err == nil && strings.TrimSpace(string(remote)) == hash {
		u.logger.Info(ctx, "Not uploading %s again, found a remote file with the same hash", key)
		return nil
	}

	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()

	u.logger.Info(ctx, "Uploading %s to %s/%s...", filepath.Base(localPath), u.bucket, key)
	upsert := true
	opts := storage_go.FileOptions{Upsert: &upsert}
	if ct := mime.TypeByExtension(filepath.Ext(localPath)); ct != "" {
		opts.ContentType = &ct
	}
	if _, err := u.client.UploadFile(u.bucket, key, f, opts); err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}

	// the sidecar is written last so it never describes a partial upload
	if _, err := u.client.UploadFile(u.bucket, sidecarKey(key), bytes.NewReader([]byte(hash)), storage_go.FileOptions{Upsert: &upsert}); err != nil {
		return fmt.Errorf("upload %s: %w", sidecarKey(key), err)
	}

	u.logger.Info(ctx, "Uploading %s... done", key)
	return nil
}

func (u *implSupabase) PublicURL(key string) string {
	return u.client.GetPublicUrl(u.bucket, key).SignedURL
}

func sidecarKey(key string) string {
	return key + ".sha256"
}

// fileHash returns the hex sha256 of the file, read in hashChunk blocks.
func fileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.CopyBuffer(h, f, make([]byte, hashChunk)); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
