// Package text defines the styled, multi-section text model consumed by the
// typesetting layer: an ordered sequence of (value, style) sections plus a
// whole-text alignment. Everything here is a plain value type with no
// internal state — layout is computed externally, on demand, from the
// current value, so mutation needs no invalidation protocol.
package text

import "strings"

// Section is one styled run of UTF-8 text. An empty Value is legal and
// represents a zero-width run; what that renders as is the typesetter's
// decision, not the model's.
type Section struct {
	Value string
	Style Style
}

// NewSection pairs a content string with a style.
func NewSection(value string, style Style) Section {
	return Section{Value: value, Style: style}
}

// Text is an ordered list of styled sections with a single alignment that
// applies to the text as a whole. Section order is rendering/reading order.
// The zero value has no sections and the default alignment (left/top).
type Text struct {
	Sections  []Section
	Alignment Alignment
}

// New constructs a Text with a single section.
//
//	banner := text.New("hello world!", style, text.Alignment{
//		Horizontal: text.HAlignCenter,
//		Vertical:   text.VAlignCenter,
//	})
func New(value string, style Style, alignment Alignment) Text {
	return Text{
		Sections:  []Section{{Value: value, Style: style}},
		Alignment: alignment,
	}
}

// NewSections constructs a Text with one section per value, all starting
// from the same style. Each section holds its own copy of the style, so
// restyling one section later never affects its siblings. An empty values
// slice yields a Text with zero sections.
func NewSections(values []string, style Style, alignment Alignment) Text {
	sections := make([]Section, 0, len(values))
	for _, v := range values {
		sections = append(sections, Section{Value: v, Style: style})
	}
	return Text{Sections: sections, Alignment: alignment}
}

// Clone returns a deep copy whose sections slice is independent of t's.
func (t Text) Clone() Text {
	out := Text{Alignment: t.Alignment}
	if len(t.Sections) > 0 {
		out.Sections = make([]Section, len(t.Sections))
		copy(out.Sections, t.Sections)
	}
	return out
}

// String joins the section values in order, ignoring styles.
func (t Text) String() string {
	var b strings.Builder
	for _, s := range t.Sections {
		b.WriteString(s.Value)
	}
	return b.String()
}
