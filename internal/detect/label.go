package detect

import (
	"regexp"
	"strings"

	"github.com/oks-citadel/Apply-sub014/internal/dom"
	"github.com/oks-citadel/Apply-sub014/internal/types"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// FieldLabel resolves a field's raw label through a fixed precedence
// chain. Any single source is frequently absent on hand-rolled or
// generated forms, so resolution degrades step by step:
// explicit <label for> -> ancestor <label> -> aria-label ->
// aria-labelledby -> placeholder -> name -> vendor data attributes ->
// previous-sibling text -> parent stray text -> "".
func FieldLabel(el *dom.Element) string {
	if id := el.ID(); id != "" {
		if label := el.Document().First(`label[for="` + id + `"]`); label != nil {
			if text := strings.TrimSpace(label.Text()); text != "" {
				return text
			}
		}
	}

	if ancestor := el.Closest("label"); ancestor != nil {
		// Exclude the input's own subtree so its value never leaks in.
		if text := ancestor.TextExcluding(el); text != "" {
			return text
		}
	}

	if aria := strings.TrimSpace(el.Attr("aria-label")); aria != "" {
		return aria
	}

	if labelledBy := strings.TrimSpace(el.Attr("aria-labelledby")); labelledBy != "" {
		// aria-labelledby may reference several ids; concatenate them.
		var parts []string
		for _, id := range strings.Fields(labelledBy) {
			if target := el.Document().First("#" + id); target != nil {
				if text := strings.TrimSpace(target.Text()); text != "" {
					parts = append(parts, text)
				}
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, " ")
		}
	}

	if placeholder := strings.TrimSpace(el.Attr("placeholder")); placeholder != "" {
		return placeholder
	}

	if name := el.Name(); name != "" {
		return humanizeName(name)
	}

	for _, attr := range []string{"data-label", "data-field-name", "data-automation-id"} {
		if value := strings.TrimSpace(el.Attr(attr)); value != "" {
			return humanizeName(value)
		}
	}

	if text := el.PrevSiblingText(); text != "" {
		return text
	}

	if text := el.ParentStrayText(); text != "" {
		return text
	}

	return ""
}

// CleanLabel strips required markers and separators from a raw label:
// asterisks and colon variants removed, whitespace collapsed.
func CleanLabel(label string) string {
	label = strings.NewReplacer("*", "", ":", "", "：", "").Replace(label)
	label = whitespaceRe.ReplaceAllString(label, " ")
	return strings.TrimSpace(label)
}

// humanizeName turns an attribute token into readable words:
// "first_name" and "first-name" both become "first name".
func humanizeName(name string) string {
	name = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(name)
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(name, " "))
}

// GroupRelatedFields partitions detected fields into coarse buckets by
// label substring so callers can render matched fields together. The fill
// pipeline does not use this.
func GroupRelatedFields(fields []types.FormField) map[string][]types.FormField {
	groups := map[string][]types.FormField{}
	for _, field := range fields {
		groups[groupFor(field.Label)] = append(groups[groupFor(field.Label)], field)
	}
	return groups
}

func groupFor(label string) string {
	lower := strings.ToLower(label)
	switch {
	case containsAny(lower, "address", "city", "state", "zip", "postal", "country"):
		return "address"
	case containsAny(lower, "start date", "end date", "from date", "to date"):
		return "dateRange"
	case containsAny(lower, "first name", "last name", "full name", "middle name", "name"):
		return "name"
	default:
		return "other"
	}
}
