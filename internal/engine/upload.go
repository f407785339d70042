package engine

import (
	"context"
	"fmt"

	"github.com/oks-citadel/Apply-sub014/internal/dom"
	"github.com/oks-citadel/Apply-sub014/internal/platform"
	"github.com/oks-citadel/Apply-sub014/internal/types"
)

// UploadResume attaches the resume file to the first file input the
// spec's selectors locate. File inputs are searched without a visibility
// filter because vendors hide them behind styled drop zones. When no
// input accepts the file and the spec offers a paste-as-text textarea,
// the resume text is pasted there instead.
func UploadResume(ctx context.Context, doc *dom.Document, spec *platform.Spec, writer FieldWriter, file *types.ResumeFile) error {
	if file == nil {
		return fmt.Errorf("no resume file configured")
	}

	var lastErr error
	for _, selector := range spec.FileInputSelectors {
		input := firstFileInput(doc, selector)
		if input == nil {
			continue
		}
		if err := writer.UploadFile(ctx, input, file); err != nil {
			lastErr = err
			continue
		}
		return nil
	}

	if err := pasteResumeText(ctx, doc, spec, writer, file); err == nil {
		return nil
	}

	if lastErr != nil {
		return fmt.Errorf("resume upload failed: %w", lastErr)
	}
	return fmt.Errorf("no file input matched any of %d selectors", len(spec.FileInputSelectors))
}

func firstFileInput(doc *dom.Document, selector string) *dom.Element {
	for _, el := range doc.Find(selector) {
		if el.Tag() == "input" && el.InputType() == "file" {
			return el
		}
		// Vendor selectors sometimes address a wrapper around the input.
		if nested := el.Find("input[type='file']"); len(nested) > 0 {
			return nested[0]
		}
	}
	return nil
}

func pasteResumeText(ctx context.Context, doc *dom.Document, spec *platform.Spec, writer FieldWriter, file *types.ResumeFile) error {
	if spec.PasteFallbackSelector == "" {
		return fmt.Errorf("no paste fallback for this platform")
	}
	if file.Text == "" {
		return fmt.Errorf("no resume text available to paste")
	}
	area := doc.First(spec.PasteFallbackSelector)
	if area == nil {
		return fmt.Errorf("paste fallback %q not present", spec.PasteFallbackSelector)
	}
	return writer.FillText(ctx, area, file.Text)
}
