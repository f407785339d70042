package engine

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/oks-citadel/Apply-sub014/internal/dom"
	"github.com/oks-citadel/Apply-sub014/internal/types"
)

// ChromeWriter drives a live page through chromedp. The context passed
// to each method must be a chromedp browser context; elements are
// addressed in the page by their computed CSS selector. Requires
// Chrome/Chromium to be installed on the system.
type ChromeWriter struct {
	// TypingDelay paces SendKeys-style typing. Zero uses chromedp's
	// native key pacing.
	TypingDelay time.Duration
	Verbose     bool
}

// NewChromeWriter returns a writer that talks to a live browser.
func NewChromeWriter(typingDelay time.Duration, verbose bool) *ChromeWriter {
	return &ChromeWriter{TypingDelay: typingDelay, Verbose: verbose}
}

// NewBrowserContext creates a headless browser context suitable for the
// writer, with the returned cancel releasing the browser.
func NewBrowserContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)

	cancel := func() {
		cancelTimeout()
		cancelBrowser()
		cancelAlloc()
	}
	return browserCtx, cancel
}

// FillText focuses the element, types the value, then re-applies it
// through the native value setter so framework-controlled inputs pick
// the change up, and dispatches input, change and blur.
func (w *ChromeWriter) FillText(ctx context.Context, el *dom.Element, value string) error {
	sel := el.Selector()
	if w.Verbose {
		log.Printf("[CHROME] fill %s (%d chars)", sel, len(value))
	}

	actions := []chromedp.Action{
		chromedp.ScrollIntoView(sel),
		chromedp.Focus(sel),
		chromedp.Clear(sel),
	}
	if w.TypingDelay > 0 {
		for _, r := range value {
			actions = append(actions,
				chromedp.SendKeys(sel, string(r)),
				chromedp.Sleep(w.TypingDelay),
			)
		}
	} else {
		actions = append(actions, chromedp.SendKeys(sel, value))
	}
	actions = append(actions, chromedp.Evaluate(nativeSetterJS(sel, value), nil))

	if err := chromedp.Run(ctx, actions...); err != nil {
		return fmt.Errorf("fill %s: %w", sel, err)
	}

	// Mirror the write into the in-memory document so validation sees it.
	el.SetValue(value)
	return nil
}

// SelectOption sets the select's value and dispatches change.
func (w *ChromeWriter) SelectOption(ctx context.Context, el *dom.Element, optionValue string) error {
	sel := el.Selector()
	err := chromedp.Run(ctx,
		chromedp.ScrollIntoView(sel),
		chromedp.SetValue(sel, optionValue),
		chromedp.Evaluate(dispatchEventsJS(sel, "input", "change", "blur"), nil),
	)
	if err != nil {
		return fmt.Errorf("select %s: %w", sel, err)
	}
	el.SetValue(optionValue)
	return nil
}

// SetChecked clicks the control when its state differs from checked.
func (w *ChromeWriter) SetChecked(ctx context.Context, el *dom.Element, checked bool) error {
	sel := el.Selector()
	script := fmt.Sprintf(`(function() {
		var el = document.querySelector(%q);
		if (!el) { return false; }
		if (el.checked !== %t) {
			el.click();
		}
		return el.checked;
	})()`, sel, checked)

	var got bool
	if err := chromedp.Run(ctx, chromedp.Evaluate(script, &got)); err != nil {
		return fmt.Errorf("set checked %s: %w", sel, err)
	}
	el.SetChecked(got)
	return nil
}

// UploadFile attaches the resume file from disk to the file input.
func (w *ChromeWriter) UploadFile(ctx context.Context, el *dom.Element, file *types.ResumeFile) error {
	if file == nil || file.Path == "" {
		return fmt.Errorf("no local file to upload")
	}
	sel := el.Selector()
	err := chromedp.Run(ctx,
		chromedp.SetUploadFiles(sel, []string{file.Path}),
		chromedp.Evaluate(dispatchEventsJS(sel, "change"), nil),
	)
	if err != nil {
		return fmt.Errorf("upload to %s: %w", sel, err)
	}
	el.SetUploadedFile(file.Name)
	return nil
}

// Highlight outlines the element to show fill progress on screen.
func (w *ChromeWriter) Highlight(ctx context.Context, el *dom.Element, state string) error {
	colors := map[string]string{
		"success": "#22c55e",
		"warning": "#eab308",
		"error":   "#ef4444",
	}
	color, ok := colors[state]
	if !ok {
		color = "#3b82f6"
	}

	sel := el.Selector()
	script := fmt.Sprintf(`(function() {
		var el = document.querySelector(%q);
		if (el) { el.style.outline = '2px solid %s'; }
	})()`, sel, color)

	if err := chromedp.Run(ctx, chromedp.Evaluate(script, nil)); err != nil {
		return fmt.Errorf("highlight %s: %w", sel, err)
	}
	el.SetHighlight(state)
	return nil
}

// ClickSubmit clicks the submit control.
func (w *ChromeWriter) ClickSubmit(ctx context.Context, el *dom.Element) error {
	sel := el.Selector()
	if err := chromedp.Run(ctx, chromedp.Click(sel, chromedp.NodeVisible)); err != nil {
		return fmt.Errorf("click %s: %w", sel, err)
	}
	el.Dispatch("click")
	return nil
}

// nativeSetterJS writes the value through the prototype's native setter,
// which is how framework-controlled inputs observe programmatic writes,
// then dispatches the standard event sequence.
func nativeSetterJS(selector, value string) string {
	return fmt.Sprintf(`(function() {
		var el = document.querySelector(%q);
		if (!el) { return; }
		var proto = el.tagName === 'TEXTAREA' ? window.HTMLTextAreaElement : window.HTMLInputElement;
		var desc = Object.getOwnPropertyDescriptor(proto.prototype, 'value');
		if (desc && desc.set) {
			desc.set.call(el, %q);
		} else {
			el.value = %q;
		}
		['input', 'change', 'blur'].forEach(function(name) {
			el.dispatchEvent(new Event(name, { bubbles: true }));
		});
	})()`, selector, value, value)
}

func dispatchEventsJS(selector string, events ...string) string {
	script := fmt.Sprintf(`(function() {
		var el = document.querySelector(%q);
		if (!el) { return; }`, selector)
	for _, ev := range events {
		script += fmt.Sprintf(`
		el.dispatchEvent(new Event(%q, { bubbles: true }));`, ev)
	}
	return script + `
	})()`
}
