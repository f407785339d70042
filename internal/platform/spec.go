package platform

import (
	"context"

	"github.com/oks-citadel/Apply-sub014/internal/dom"
	"github.com/oks-citadel/Apply-sub014/internal/types"
)

// Metadata describes a vendor spec for reporting and diagnostics.
type Metadata struct {
	Name     string   `json:"name"`
	Version  string   `json:"version"`
	Features []string `json:"features"`
}

// Spec is the per-vendor configuration the engine runs on. Everything
// vendor-specific lives here as data; the fill pipeline itself is shared.
type Spec struct {
	Platform Platform
	Metadata Metadata

	// FormSelectors locate the form containers whose fields get detected.
	FormSelectors []string

	// Mappings bind detected fields to resume data, checked in
	// declaration order with the first non-empty value winning.
	Mappings []types.FieldMapping

	// SubmitSelectors locate the submit control, tried in order.
	SubmitSelectors []string

	// FileInputSelectors locate resume upload inputs. These are searched
	// without a visibility filter since upload inputs are routinely
	// hidden behind styled drop zones.
	FileInputSelectors []string

	// PasteFallbackSelector locates a paste-resume-as-text textarea used
	// when no file input accepts the upload. Empty when the vendor has
	// no such affordance.
	PasteFallbackSelector string

	// Valid reports whether the document looks like a page this spec can
	// operate on. The engine aborts the run when this returns false.
	Valid func(url string, doc *dom.Document) bool

	// Initialize runs before field detection, for vendors that need
	// setup work such as waiting on a form container. Optional.
	Initialize func(ctx context.Context, doc *dom.Document) error

	// Cleanup runs after the pipeline finishes, regardless of outcome.
	// Optional.
	Cleanup func(ctx context.Context, doc *dom.Document) error
}

// For returns the spec for a detected platform. Unknown platforms get
// the generic spec so a best-effort run is always possible.
func For(p Platform) *Spec {
	switch p {
	case PlatformGreenhouse:
		return greenhouseSpec()
	case PlatformLever:
		return leverSpec()
	case PlatformWorkday:
		return workdaySpec()
	default:
		return genericSpec()
	}
}
