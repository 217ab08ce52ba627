// Package launcher defines the values and collaborator contracts shared by the
// quick-launch overlay and the backends that serve it.
package launcher

import (
	"context"
	"fmt"
)

// SearchResult describes one launchable entity. Path is the launch handle and
// must be unique within a result set; Kind is a display category only.
type SearchResult struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Kind string `json:"kind"`
}

// Searcher returns results for a trimmed, non-empty query in rank order.
type Searcher interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

// Launcher starts the entity identified by path.
type Launcher interface {
	Launch(ctx context.Context, path string) error
}

// Window is the surface hosting the overlay.
type Window interface {
	SetSize(ctx context.Context, width, height int) error
	Hide(ctx context.Context) error
}

// SearchError reports a failed or invalid search response.
type SearchError struct {
	Query string
	Err   error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("search %q: %v", e.Query, e.Err)
}

func (e *SearchError) Unwrap() error { return e.Err }

// LaunchError reports a failed launch request.
type LaunchError struct {
	Path string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launch %s: %v", e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// ResizeError reports a failed window geometry change.
type ResizeError struct {
	Width  int
	Height int
	Err    error
}

func (e *ResizeError) Error() string {
	return fmt.Sprintf("resize to %dx%d: %v", e.Width, e.Height, e.Err)
}

func (e *ResizeError) Unwrap() error { return e.Err }
