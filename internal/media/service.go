package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arya-5990/RoarFitnessAdmin/internal/forms"
	"github.com/arya-5990/RoarFitnessAdmin/internal/logging"
	"github.com/arya-5990/RoarFitnessAdmin/pkg/interfaces"
)

var (
	// ErrUploaderUnavailable reports that no uploader has been configured.
	ErrUploaderUnavailable = errors.New("media: uploader unavailable")
	// ErrEmptyReference reports an empty media reference.
	ErrEmptyReference = errors.New("media: empty reference")
)

// Service normalizes media references: remote URLs pass through untouched,
// pending local references are opened and pushed through the uploader.
type Service interface {
	EnsureRemote(ctx context.Context, ref string) (string, error)
}

// ServiceOption customises the media service.
type ServiceOption func(*service)

// WithSource overrides how local references are opened. Defaults to the
// local filesystem.
func WithSource(source interfaces.MediaSource) ServiceOption {
	return func(s *service) {
		if source != nil {
			s.source = source
		}
	}
}

// WithLogger attaches a logger for upload diagnostics.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFolder sets the destination folder sent with each upload.
func WithFolder(folder string) ServiceOption {
	return func(s *service) {
		if folder != "" {
			s.folder = folder
		}
	}
}

type service struct {
	uploader interfaces.MediaUploader
	source   interfaces.MediaSource
	folder   string
	logger   interfaces.Logger
}

// NewService constructs a media service delegating to the configured uploader.
func NewService(uploader interfaces.MediaUploader, opts ...ServiceOption) Service {
	s := &service{
		uploader: uploader,
		source:   fileSource{},
		folder:   DefaultFolder,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureRemote resolves a reference to a durable remote URL. References that
// already look remote are returned unchanged, so resubmitting an edited
// record with an unchanged photo never re-uploads.
func (s *service) EnsureRemote(ctx context.Context, ref string) (string, error) {
	trimmed := strings.TrimSpace(ref)
	if trimmed == "" {
		return "", ErrEmptyReference
	}
	if forms.IsRemoteRef(trimmed) {
		return trimmed, nil
	}
	if s.uploader == nil {
		return "", ErrUploaderUnavailable
	}

	content, err := s.source.Open(ctx, trimmed)
	if err != nil {
		return "", fmt.Errorf("media: open %s: %w", trimmed, err)
	}
	defer content.Close()

	result, err := s.uploader.Upload(ctx, interfaces.MediaUploadRequest{
		Content:  content,
		Name:     uploadName(trimmed),
		MimeType: "image/jpeg",
		Folder:   s.folder,
	})
	if err != nil {
		s.logger.Error("media.upload.failed", "ref", trimmed, "error", err)
		return "", err
	}

	s.logger.Info("media.upload.done", "ref", trimmed, "url", result.URL, "bytes", result.Bytes)
	return result.URL, nil
}

func uploadName(ref string) string {
	if idx := strings.LastIndexByte(ref, '/'); idx >= 0 && idx < len(ref)-1 {
		return ref[idx+1:]
	}
	return "upload.jpg"
}

type fileSource struct{}

func (fileSource) Open(_ context.Context, ref string) (io.ReadCloser, error) {
	return os.Open(strings.TrimPrefix(ref, "file://"))
}
