// Package page abstracts read access to a rendered listing page, so the
// harvesting layers work identically against a live browser tab and a
// statically fetched document.
package page

import "context"

// Access is the read surface the harvesters consume. Implementations wrap
// either a live browser page or a parsed static document.
type Access interface {
	// CurrentURL is the page's resolved URL after redirects.
	CurrentURL() string
	// RenderedText is the visible text of the page, whitespace-collapsed.
	RenderedText(ctx context.Context) (string, error)
	// HTML is the full serialized document.
	HTML(ctx context.Context) (string, error)
	// EmbeddedState decodes the page's embedded JSON state tree, when one
	// is present. The boolean is false when the page carries no state.
	EmbeddedState(ctx context.Context) (any, bool, error)
	// QueryOuterHTML returns the outer HTML of every element matching the
	// CSS selector. An invalid selector returns an error, not a panic.
	QueryOuterHTML(ctx context.Context, selector string) ([]string, error)
	// Frames returns Access values for the page's same-origin child
	// frames. Depth is one level; frames of frames are not descended.
	Frames(ctx context.Context) ([]Access, error)
}

// Loader is implemented by pages that can grow: infinite-scroll lists and
// "load more" buttons. Static snapshots do not implement it.
type Loader interface {
	// LoadMore stimulates the page to reveal more rows. Returns false when
	// no further content appeared.
	LoadMore(ctx context.Context) (bool, error)
}
