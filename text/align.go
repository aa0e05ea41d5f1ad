package text

import (
	"fmt"

	"github.com/tdewolff/canvas"
)

// Alignment describes how a whole Text grows around its anchor (the nominal
// render position). The zero value is left/top, the default.
type Alignment struct {
	Horizontal HorizontalAlign
	Vertical   VerticalAlign
}

// HorizontalAlign describes horizontal growth relative to the anchor.
type HorizontalAlign int

const (
	// HAlignLeft: the leftmost character sits immediately right of the
	// anchor; bounds extend rightward.
	HAlignLeft HorizontalAlign = iota
	// HAlignCenter: leftmost and rightmost characters are equidistant from
	// the anchor; bounds extend symmetrically.
	HAlignCenter
	// HAlignRight: the rightmost character sits immediately left of the
	// anchor; bounds extend leftward.
	HAlignRight
)

// VerticalAlign describes vertical growth relative to the anchor.
type VerticalAlign int

const (
	// VAlignTop: bounds begin at the anchor and extend downward.
	VAlignTop VerticalAlign = iota
	// VAlignCenter: bounds center on the anchor, extending equally both ways.
	VAlignCenter
	// VAlignBottom: bounds end at the anchor, extending upward.
	VAlignBottom
)

// String returns the stable serialized name of h.
func (h HorizontalAlign) String() string {
	switch h {
	case HAlignLeft:
		return "left"
	case HAlignCenter:
		return "center"
	case HAlignRight:
		return "right"
	}
	return fmt.Sprintf("HorizontalAlign(%d)", int(h))
}

// String returns the stable serialized name of v.
func (v VerticalAlign) String() string {
	switch v {
	case VAlignTop:
		return "top"
	case VAlignCenter:
		return "center"
	case VAlignBottom:
		return "bottom"
	}
	return fmt.Sprintf("VerticalAlign(%d)", int(v))
}

// MarshalText implements encoding.TextMarshaler.
func (h HorizontalAlign) MarshalText() ([]byte, error) {
	switch h {
	case HAlignLeft, HAlignCenter, HAlignRight:
		return []byte(h.String()), nil
	}
	return nil, fmt.Errorf("无法序列化非法的水平对齐值 %d", int(h))
}

// UnmarshalText implements encoding.TextUnmarshaler. "start" and "end" are
// accepted as aliases for "left" and "right".
func (h *HorizontalAlign) UnmarshalText(b []byte) error {
	parsed, err := ParseHorizontalAlign(string(b))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (v VerticalAlign) MarshalText() ([]byte, error) {
	switch v {
	case VAlignTop, VAlignCenter, VAlignBottom:
		return []byte(v.String()), nil
	}
	return nil, fmt.Errorf("无法序列化非法的垂直对齐值 %d", int(v))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *VerticalAlign) UnmarshalText(b []byte) error {
	parsed, err := ParseVerticalAlign(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseHorizontalAlign parses the serialized form of a HorizontalAlign.
func ParseHorizontalAlign(s string) (HorizontalAlign, error) {
	switch s {
	case "left", "start":
		return HAlignLeft, nil
	case "center":
		return HAlignCenter, nil
	case "right", "end":
		return HAlignRight, nil
	}
	return HAlignLeft, fmt.Errorf("未知的水平对齐 %q（可选 left/center/right）", s)
}

// ParseVerticalAlign parses the serialized form of a VerticalAlign.
func ParseVerticalAlign(s string) (VerticalAlign, error) {
	switch s {
	case "top":
		return VAlignTop, nil
	case "center":
		return VAlignCenter, nil
	case "bottom":
		return VAlignBottom, nil
	}
	return VAlignTop, fmt.Errorf("未知的垂直对齐 %q（可选 top/center/bottom）", s)
}

// Canvas converts h into the canvas layout engine's alignment vocabulary.
// Every variant maps to exactly one canvas.TextAlign; an unmapped variant
// panics.
func (h HorizontalAlign) Canvas() canvas.TextAlign {
	switch h {
	case HAlignLeft:
		return canvas.Left
	case HAlignCenter:
		return canvas.Center
	case HAlignRight:
		return canvas.Right
	}
	panic(fmt.Sprintf("unmapped HorizontalAlign %d", int(h)))
}

// Canvas converts v into the canvas layout engine's alignment vocabulary.
func (v VerticalAlign) Canvas() canvas.TextAlign {
	switch v {
	case VAlignTop:
		return canvas.Top
	case VAlignCenter:
		return canvas.Center
	case VAlignBottom:
		return canvas.Bottom
	}
	panic(fmt.Sprintf("unmapped VerticalAlign %d", int(v)))
}
