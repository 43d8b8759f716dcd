// Package render turns entity lists into terminal output under one shared
// policy: at most the 10 most recent items, most recent first, each field cut
// to a per-field character budget with an ellipsis marker, and a literal
// "no data" placeholder for empty sets. Full content is only available through
// detail rendering — never through a list.
//
// One generic List definition per entity replaces the per-entity rendering
// code the five dashboards would otherwise each carry.
package render

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// MaxListItems caps every list view.
	MaxListItems = 10

	// Ellipsis marks truncated fields.
	Ellipsis = "..."

	// EmptyPlaceholder is rendered instead of an empty list.
	EmptyPlaceholder = "no data"
)

// Truncate cuts s to at most budget runes, appending the ellipsis marker when
// anything was cut. The result is therefore never longer than
// budget + len(Ellipsis) characters.
func Truncate(s string, budget int) string {
	if budget <= 0 || utf8.RuneCountInString(s) <= budget {
		return s
	}
	runes := []rune(s)
	return string(runes[:budget]) + Ellipsis
}

// Flatten collapses line breaks so multi-line content fits a single list row.
// Detail views keep the original breaks.
func Flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Field maps one displayed column of an entity to its value and truncation
// budget.
type Field[T any] struct {
	Name   string
	Budget int
	Value  func(T) string
}

// List renders a sequence of one entity kind.
type List[T any] struct {
	Title     string
	Timestamp func(T) time.Time
	Fields    []Field[T]
}

// Render produces the list view: newest first, capped at MaxListItems, fields
// truncated. Rendering is a pure function of the input slice — the caller's
// slice is left untouched.
func (l List[T]) Render(items []T) string {
	var b strings.Builder
	if l.Title != "" {
		fmt.Fprintf(&b, "%s\n", l.Title)
	}

	if len(items) == 0 {
		b.WriteString(EmptyPlaceholder + "\n")
		return b.String()
	}

	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return l.Timestamp(sorted[i]).After(l.Timestamp(sorted[j]))
	})
	if len(sorted) > MaxListItems {
		sorted = sorted[:MaxListItems]
	}

	for _, item := range sorted {
		parts := make([]string, 0, len(l.Fields))
		for _, f := range l.Fields {
			v := Truncate(Flatten(f.Value(item)), f.Budget)
			if f.Name != "" {
				v = f.Name + ": " + v
			}
			parts = append(parts, v)
		}
		fmt.Fprintf(&b, "  %s\n", strings.Join(parts, " | "))
	}
	return b.String()
}

// Detail renders full field content as label/value pairs, preserving line
// breaks. This is the only path to untruncated text.
func Detail(pairs [][2]string) string {
	var b strings.Builder
	for _, p := range pairs {
		if strings.ContainsRune(p[1], '\n') {
			fmt.Fprintf(&b, "%s:\n%s\n", p[0], p[1])
		} else {
			fmt.Fprintf(&b, "%s: %s\n", p[0], p[1])
		}
	}
	return b.String()
}
