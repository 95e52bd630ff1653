package media_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/arya-5990/RoarFitnessAdmin/internal/media"
	"github.com/arya-5990/RoarFitnessAdmin/pkg/interfaces"
)

type stubUploader struct {
	calls int
	url   string
	err   error
}

func (s *stubUploader) Upload(_ context.Context, req interfaces.MediaUploadRequest) (*interfaces.MediaUploadResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	content, _ := io.ReadAll(req.Content)
	return &interfaces.MediaUploadResult{URL: s.url, Bytes: int64(len(content))}, nil
}

type stubSource struct{}

func (stubSource) Open(_ context.Context, ref string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("content of " + ref)), nil
}

func TestEnsureRemotePassesThroughRemoteRefs(t *testing.T) {
	uploader := &stubUploader{url: "https://cdn.example/new.jpg"}
	svc := media.NewService(uploader, media.WithSource(stubSource{}))

	url, err := svc.EnsureRemote(context.Background(), "https://cdn.example/old.jpg")
	if err != nil {
		t.Fatalf("ensure remote: %v", err)
	}
	if url != "https://cdn.example/old.jpg" {
		t.Fatalf("remote ref must pass through unchanged, got %s", url)
	}
	if uploader.calls != 0 {
		t.Fatalf("remote ref must never upload, got %d calls", uploader.calls)
	}
}

func TestEnsureRemoteUploadsLocalRefs(t *testing.T) {
	uploader := &stubUploader{url: "https://cdn.example/new.jpg"}
	svc := media.NewService(uploader, media.WithSource(stubSource{}))

	url, err := svc.EnsureRemote(context.Background(), "file:///tmp/photo.jpg")
	if err != nil {
		t.Fatalf("ensure remote: %v", err)
	}
	if url != "https://cdn.example/new.jpg" {
		t.Fatalf("unexpected url %s", url)
	}
	if uploader.calls != 1 {
		t.Fatalf("expected one upload got %d", uploader.calls)
	}
}

func TestEnsureRemotePropagatesUploadFailure(t *testing.T) {
	uploader := &stubUploader{err: errors.New("network down")}
	svc := media.NewService(uploader, media.WithSource(stubSource{}))

	if _, err := svc.EnsureRemote(context.Background(), "file:///tmp/photo.jpg"); err == nil {
		t.Fatalf("expected upload failure to propagate")
	}
}

func TestEnsureRemoteRejectsEmptyRef(t *testing.T) {
	svc := media.NewService(&stubUploader{}, media.WithSource(stubSource{}))
	if _, err := svc.EnsureRemote(context.Background(), "  "); err != media.ErrEmptyReference {
		t.Fatalf("expected ErrEmptyReference got %v", err)
	}
}

func TestEnsureRemoteWithoutUploader(t *testing.T) {
	svc := media.NewService(nil, media.WithSource(stubSource{}))
	if _, err := svc.EnsureRemote(context.Background(), "file:///tmp/photo.jpg"); err != media.ErrUploaderUnavailable {
		t.Fatalf("expected ErrUploaderUnavailable got %v", err)
	}
}
