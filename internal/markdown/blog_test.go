package markdown_test

import (
	"strings"
	"testing"

	"github.com/arya-5990/RoarFitnessAdmin/internal/markdown"
)

const sampleBlog = `---
title: Five Mobility Drills
category: mobility
readingTime: 4 min
image: https://cdn.example/mobility.jpg
---

Start every session with these drills.

- hip openers
- ankle circles
`

func TestParseBlog(t *testing.T) {
	post, err := markdown.ParseBlog([]byte(sampleBlog))
	if err != nil {
		t.Fatalf("parse blog: %v", err)
	}
	if post.Title != "Five Mobility Drills" {
		t.Fatalf("unexpected title %q", post.Title)
	}
	if post.Category != "mobility" {
		t.Fatalf("unexpected category %q", post.Category)
	}
	if post.ReadingTime != "4 min" {
		t.Fatalf("unexpected reading time %q", post.ReadingTime)
	}
	if post.ImageURL != "https://cdn.example/mobility.jpg" {
		t.Fatalf("unexpected image %q", post.ImageURL)
	}
	if !strings.HasPrefix(post.Body, "Start every session") {
		t.Fatalf("unexpected body %q", post.Body)
	}
}

func TestParseBlogDerivesSlugFromTitle(t *testing.T) {
	post, err := markdown.ParseBlog([]byte(sampleBlog))
	if err != nil {
		t.Fatalf("parse blog: %v", err)
	}
	if post.Slug != "five-mobility-drills" {
		t.Fatalf("unexpected slug %q", post.Slug)
	}
}

func TestParseBlogKeepsExplicitSlug(t *testing.T) {
	source := strings.Replace(sampleBlog, "---\n", "---\nslug: custom-slug\n", 1)
	post, err := markdown.ParseBlog([]byte(source))
	if err != nil {
		t.Fatalf("parse blog: %v", err)
	}
	if post.Slug != "custom-slug" {
		t.Fatalf("expected explicit slug to win, got %q", post.Slug)
	}
}

func TestRenderHTML(t *testing.T) {
	html, err := markdown.RenderHTML("# Heading\n\nSome **bold** text.")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "<strong>bold</strong>") {
		t.Fatalf("unexpected html %q", html)
	}
}
