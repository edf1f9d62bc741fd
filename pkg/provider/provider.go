package provider

import (
	"context"
	"time"
)

// ContentItem is one unit of provider content in the uniform shape every
// integration must produce.
type ContentItem struct {
	SourceId   string            `json:"source_id"`
	SourceType string            `json:"source_type"`
	SourceDate time.Time         `json:"source_date"`
	Content    string            `json:"content"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// FetchResult is one page of provider content plus the advanced cursor.
type FetchResult struct {
	Items     []ContentItem
	NewCursor Cursor
	HasMore   bool
}

// ContentProvider is the only contract a new provider integration must
// satisfy. Fetch returns at most limit items after cursor; the new cursor
// must be monotonic with respect to the provider's own ordering.
type ContentProvider interface {
	Category() string
	Fetch(ctx context.Context, cursor Cursor, limit int) (*FetchResult, error)
}
