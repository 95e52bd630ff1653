package markdown

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/arya-5990/RoarFitnessAdmin/internal/logging"
	"github.com/arya-5990/RoarFitnessAdmin/internal/sync"
	"github.com/arya-5990/RoarFitnessAdmin/pkg/interfaces"
)

// ImporterOption customises the blog importer.
type ImporterOption func(*Importer)

// ImporterWithLogger attaches a logger.
func ImporterWithLogger(logger interfaces.Logger) ImporterOption {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// Importer publishes Markdown-authored blog posts through the same submit
// pipeline the form uses, so imported posts face identical validation,
// image upload, and stamping.
type Importer struct {
	blogs  *sync.Controller
	logger interfaces.Logger
}

// NewImporter wires the importer to the blogs controller.
func NewImporter(blogs *sync.Controller, opts ...ImporterOption) *Importer {
	i := &Importer{
		blogs:  blogs,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Import parses one Markdown source and submits it as a new blog post.
func (i *Importer) Import(ctx context.Context, source []byte) (sync.Notice, error) {
	post, err := ParseBlog(source)
	if err != nil {
		return sync.Notice{}, err
	}

	session := i.blogs.NewSession()
	session.Set("title", post.Title)
	session.Set("category", post.Category)
	session.Set("readingTime", post.ReadingTime)
	session.Set("content", post.Body)
	session.Set("imageUrl", post.ImageURL)
	if post.Slug != "" {
		session.Set("slug", post.Slug)
	}

	notice, err := i.blogs.Submit(ctx, session)
	if err != nil {
		i.logger.Error("blogs.import.failed", "title", post.Title, "error", err)
		return sync.Notice{}, err
	}
	i.logger.Info("blogs.import.done", "title", post.Title, "slug", post.Slug)
	return notice, nil
}

// ImportFile reads and imports a Markdown file from disk.
func (i *Importer) ImportFile(ctx context.Context, path string) (sync.Notice, error) {
	f, err := os.Open(path)
	if err != nil {
		return sync.Notice{}, fmt.Errorf("open blog source %s: %w", path, err)
	}
	defer f.Close()

	source, err := io.ReadAll(f)
	if err != nil {
		return sync.Notice{}, fmt.Errorf("read blog source %s: %w", path, err)
	}
	return i.Import(ctx, source)
}
