package dom

import "strings"

// Visible reports whether the element would be rendered. An element is
// considered hidden when it carries the hidden attribute, is an input of
// type hidden, has both a zero width and a zero height, or when it or any
// ancestor is styled display:none, visibility:hidden or opacity:0.
func (e *Element) Visible() bool {
	if e.HasAttr("hidden") {
		return false
	}
	if e.Tag() == "input" && e.InputType() == "hidden" {
		return false
	}
	if e.zeroBox() {
		return false
	}
	for cur := e; cur != nil; cur = cur.Parent() {
		style := parseInlineStyle(cur.Attr("style"))
		if style["display"] == "none" || style["visibility"] == "hidden" {
			return false
		}
		if opacity, ok := style["opacity"]; ok && isZeroLength(opacity) {
			return false
		}
	}
	return true
}

// zeroBox is true only when both dimensions are explicitly zero, via
// inline style or width/height attributes. Elements without size
// information are assumed rendered.
func (e *Element) zeroBox() bool {
	style := parseInlineStyle(e.Attr("style"))

	width, hasWidth := style["width"]
	if !hasWidth && e.HasAttr("width") {
		width, hasWidth = e.Attr("width"), true
	}
	height, hasHeight := style["height"]
	if !hasHeight && e.HasAttr("height") {
		height, hasHeight = e.Attr("height"), true
	}

	return hasWidth && hasHeight && isZeroLength(width) && isZeroLength(height)
}

// parseInlineStyle splits an inline style attribute into a property map
// with lowercase keys and trimmed values.
func parseInlineStyle(style string) map[string]string {
	props := make(map[string]string)
	for _, decl := range strings.Split(style, ";") {
		key, value, found := strings.Cut(decl, ":")
		if !found {
			continue
		}
		props[strings.ToLower(strings.TrimSpace(key))] = strings.ToLower(strings.TrimSpace(value))
	}
	return props
}

// isZeroLength matches "0" with any unit suffix ("0", "0px", "0.0").
func isZeroLength(value string) bool {
	value = strings.TrimSpace(value)
	value = strings.TrimSuffix(value, "px")
	value = strings.TrimSuffix(value, "%")
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	for _, r := range value {
		if r != '0' && r != '.' {
			return false
		}
	}
	return true
}
