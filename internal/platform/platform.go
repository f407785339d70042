// Package platform classifies application pages into known ATS vendors
// and carries the per-vendor configuration the autofill engine runs on.
// Vendors are a closed set of data-only specs dispatched through one
// generic engine; there is no per-vendor subclassing.
package platform

import (
	"net/url"
	"strings"

	"github.com/oks-citadel/Apply-sub014/internal/dom"
)

// Platform represents a known ATS vendor.
type Platform string

const (
	// PlatformGreenhouse is the Greenhouse ATS platform
	PlatformGreenhouse Platform = "greenhouse"
	// PlatformLever is the Lever ATS platform
	PlatformLever Platform = "lever"
	// PlatformWorkday is the Workday ATS platform
	PlatformWorkday Platform = "workday"
	// PlatformGeneric is the best-effort fallback for unrecognized sites
	PlatformGeneric Platform = "generic"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

// Parse resolves a platform name given by an operator, for overriding
// detection. Unrecognized names report false.
func Parse(name string) (Platform, bool) {
	switch Platform(strings.ToLower(strings.TrimSpace(name))) {
	case PlatformGreenhouse:
		return PlatformGreenhouse, true
	case PlatformLever:
		return PlatformLever, true
	case PlatformWorkday:
		return PlatformWorkday, true
	case PlatformGeneric:
		return PlatformGeneric, true
	default:
		return PlatformUnknown, false
	}
}

// Detect identifies the ATS vendor from the page URL, falling back to DOM
// heuristics when the hostname is inconclusive (white-labeled career
// sites embed vendor widgets under their own domains).
func Detect(urlStr string, doc *dom.Document) Platform {
	if p := detectByHost(urlStr); p != PlatformUnknown {
		return p
	}
	return detectByDOM(doc)
}

func detectByHost(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Host)

	if strings.Contains(host, "greenhouse.io") {
		return PlatformGreenhouse
	}
	if strings.Contains(host, "lever.co") {
		return PlatformLever
	}
	if strings.Contains(host, "workday.com") ||
		strings.Contains(host, "myworkdayjobs.com") {
		return PlatformWorkday
	}

	return PlatformUnknown
}

func detectByDOM(doc *dom.Document) Platform {
	if doc == nil {
		return PlatformUnknown
	}

	switch {
	case doc.Has("#grnhse_app, #application_form, #main_fields"):
		return PlatformGreenhouse
	case doc.Has(".application-form, .posting-apply, .lever-application-form"):
		return PlatformLever
	case doc.Has("[data-automation-id='applyFlowPage'], [data-automation-id='jobApplication']"):
		return PlatformWorkday
	case doc.Has("form"):
		return PlatformGeneric
	default:
		return PlatformUnknown
	}
}
