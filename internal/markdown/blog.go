package markdown

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	slug "github.com/goliatone/go-slug"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// BlogSource is a blog post authored as a Markdown file: YAML frontmatter
// for the metadata the console would otherwise collect field by field, and
// the Markdown body as the content.
type BlogSource struct {
	Title       string
	Category    string
	ReadingTime string
	ImageURL    string
	Slug        string
	Date        time.Time
	Body        string
}

type blogEnvelope struct {
	Title       string    `yaml:"title"`
	Category    string    `yaml:"category"`
	ReadingTime string    `yaml:"readingTime"`
	Image       string    `yaml:"image"`
	Slug        string    `yaml:"slug"`
	Date        time.Time `yaml:"date"`
}

// ParseBlog extracts metadata and body from a Markdown blog file. The slug
// is derived from the title when the frontmatter does not set one.
func ParseBlog(source []byte) (BlogSource, error) {
	var meta blogEnvelope
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return BlogSource{}, fmt.Errorf("parse blog frontmatter: %w", err)
	}

	post := BlogSource{
		Title:       strings.TrimSpace(meta.Title),
		Category:    strings.TrimSpace(meta.Category),
		ReadingTime: strings.TrimSpace(meta.ReadingTime),
		ImageURL:    strings.TrimSpace(meta.Image),
		Slug:        strings.TrimSpace(meta.Slug),
		Date:        meta.Date,
		Body:        strings.TrimSpace(string(body)),
	}

	if post.Slug == "" && post.Title != "" {
		normalized, err := slug.Normalize(post.Title)
		if err != nil {
			return BlogSource{}, fmt.Errorf("derive blog slug: %w", err)
		}
		post.Slug = normalized
	}

	return post, nil
}

// RenderHTML converts the Markdown body to HTML for previewing the post as
// the public site would show it. GFM extensions are enabled; raw HTML in
// the source is suppressed.
func RenderHTML(body string) (string, error) {
	engine := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	var buf bytes.Buffer
	if err := engine.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("render blog html: %w", err)
	}
	return buf.String(), nil
}
