// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package page defines the Pages collection of the Pressroom CMS.

It manages the lifecycle of editorial pages: drafting, publishing, archiving,
and soft-deletion with restore.

Core Responsibility:

  - Content: Title, body, excerpt, and media references.
  - Addressing: URL slugs, auto-generated from titles when absent.
  - SEO: Meta title/description and Open Graph image fields.

This package acts as the source of truth for all page-related data models.
*/
package page

import "time"

// # Domain Enums

// Status represents the publication status of a page.
type Status string

const (
	// StatusDraft is the initial state; not visible on the public site.
	StatusDraft Status = "draft"

	// StatusPublished marks the page as live.
	StatusPublished Status = "published"

	// StatusArchived removes the page from the public site without deleting it.
	StatusArchived Status = "archived"
)

// IsValid reports whether s is a recognised [Status] value.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// # Core Entities

// Page is the central aggregate of the Pages collection.
type Page struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"` // URL-safe identifier, unique
	Content         string     `json:"content"`
	Excerpt         string     `json:"excerpt,omitempty"`
	FeaturedImage   string     `json:"featured_image,omitempty"`
	Category        string     `json:"category,omitempty"`
	Tags            string     `json:"tags,omitempty"` // Comma-separated labels
	MetaTitle       string     `json:"meta_title,omitempty"`
	MetaDescription string     `json:"meta_description,omitempty"`
	OGImage         string     `json:"og_image,omitempty"`
	Status          Status     `json:"status"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	AuthorID        string     `json:"author_id"`
	Author          *Author    `json:"author,omitempty"` // Denormalized for table views
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty"` // nil = active; non-nil = soft-deleted
}

// Author is the page-owner summary embedded in list responses.
type Author struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// # Search & Filtering

// Filter holds the parameters for a filtered page list query.
type Filter struct {
	// Query matches against title, content, and slug.
	Query string `json:"q,omitempty"`

	// Status narrows the list to one publication status; empty means all.
	Status Status `json:"status,omitempty"`

	// ShowDeleted flips the listing between active and soft-deleted rows.
	ShowDeleted bool `json:"show_deleted,omitempty"`
}
