package uploader

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/podcast-flow/internal/logger"
	storage_go "github.com/supabase-community/storage-go"
)

type fakeBucket struct {
	objects map[string][]byte
	uploads []string
	failOn  string
}

func newFakeBucket() *fakeBucket {
	return &fakeBucket{objects: map[string][]byte{}}
}

func (f *fakeBucket) UploadFile(bucketId string, relativePath string, data io.Reader, fileOptions ...storage_go.FileOptions) (storage_go.FileUploadResponse, error) {
	if relativePath == f.failOn {
		return storage_go.FileUploadResponse{}, errors.New("response status code 500")
	}
	b, err := io.ReadAll(data)
	if err != nil {
		return storage_go.FileUploadResponse{}, err
	}
	f.objects[relativePath] = b
	f.uploads = append(f.uploads, relativePath)
	return storage_go.FileUploadResponse{}, nil
}

func (f *fakeBucket) DownloadFile(bucketId string, filePath string, urlOptions ...storage_go.UrlOptions) ([]byte, error) {
	b, ok := f.objects[filePath]
	if !ok {
		return nil, errors.New("Object not found")
	}
	return b, nil
}

func (f *fakeBucket) GetPublicUrl(bucketId string, filePath string, urlOptions ...storage_go.UrlOptions) storage_go.SignedUrlResponse {
	return storage_go.SignedUrlResponse{SignedURL: "https://project.supabase.co/storage/v1/object/public/" + bucketId + "/" + filePath}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "ep-01.mp3")
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestUploadSkipsIdenticalContent(t *testing.T) {
	ctx := context.Background()
	bucket := newFakeBucket()
	u := NewSupabase(bucket, "smol-podcaster", logger.Nop())
	local := writeFile(t, "audio bytes")

	if err := u.Upload(ctx, local, "podcasts/ep-01"); err != nil {
		t.Fatalf("first Upload() error = %v", err)
	}
	if err := u.Upload(ctx, local, "podcasts/ep-01"); err != nil {
		t.Fatalf("second Upload() error = %v", err)
	}

	if len(bucket.uploads) != 2 {
		t.Errorf("uploads = %v, want the object and its sidecar once", bucket.uploads)
	}
	if string(bucket.objects["podcasts/ep-01"]) != "audio bytes" {
		t.Errorf("object content = %q", bucket.objects["podcasts/ep-01"])
	}
	hash := string(bucket.objects["podcasts/ep-01.sha256"])
	if len(hash) != 64 {
		t.Errorf("sidecar = %q, want a hex sha256", hash)
	}
}

func TestUploadReplacesChangedContent(t *testing.T) {
	ctx := context.Background()
	bucket := newFakeBucket()
	u := NewSupabase(bucket, "smol-podcaster", logger.Nop())
	local := writeFile(t, "take one")

	if err := u.Upload(ctx, local, "podcasts/ep-01"); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(local, []byte("take two"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := u.Upload(ctx, local, "podcasts/ep-01"); err != nil {
		t.Fatal(err)
	}

	if len(bucket.uploads) != 4 {
		t.Errorf("uploads = %v, want two object+sidecar pairs", bucket.uploads)
	}
	if string(bucket.objects["podcasts/ep-01"]) != "take two" {
		t.Errorf("object content = %q, want take two", bucket.objects["podcasts/ep-01"])
	}
}

func TestUploadFailureLeavesNoSidecar(t *testing.T) {
	bucket := newFakeBucket()
	bucket.failOn = "podcasts/ep-01"
	u := NewSupabase(bucket, "smol-podcaster", logger.Nop())

	if err := u.Upload(context.Background(), writeFile(t, "x"), "podcasts/ep-01"); err == nil {
		t.Fatal("Upload() expected error")
	}
	if _, ok := bucket.objects["podcasts/ep-01.sha256"]; ok {
		t.Error("sidecar written for a failed upload")
	}
}

func TestUploadMissingFile(t *testing.T) {
	u := NewSupabase(newFakeBucket(), "smol-podcaster", logger.Nop())
	if err := u.Upload(context.Background(), filepath.Join(t.TempDir(), "missing.mp3"), "podcasts/missing"); err == nil {
		t.Error("Upload() expected error for a missing file")
	}
}

func TestPublicURL(t *testing.T) {
	u := NewSupabase(newFakeBucket(), "smol-podcaster", logger.Nop())
	got := u.PublicURL("podcasts/ep-01")
	if !strings.HasSuffix(got, "/smol-podcaster/podcasts/ep-01") {
		t.Errorf("PublicURL() = %q", got)
	}
}

func TestFileHash(t *testing.T) {
	p := writeFile(t, "")
	got, err := fileHash(p)
	if err != nil {
		t.Fatal(err)
	}
	if want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"; got != want {
		t.Errorf("fileHash() = %q, want %q", got, want)
	}
}
