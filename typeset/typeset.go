// Package typeset turns styled text values into positioned line geometry.
// It consumes only the model's public surface — sections in order plus the
// whole-text alignment — and measures runs through the Measurer seam, so
// the placement math stays independent of any font backend.
package typeset

import (
	"fmt"
	"strings"

	"github.com/ZRonchy/vellum/text"
)

// Point is a page position in mm, top-left origin, y growing downward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Extents are the measured dimensions of one run: advance width, line
// height and baseline ascent, all in mm.
type Extents struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Ascent float64 `json:"ascent"`
}

// Measurer measures a single-line run of content under a style.
// 实现方通常由字体后端（canvas）提供；测试可注入桩实现。
type Measurer interface {
	Measure(value string, style text.Style) (Extents, error)
}

// Run is a placed section fragment. X/Y locate the run's baseline start.
type Run struct {
	Value string     `json:"value"`
	Style text.Style `json:"-"`
	X     float64    `json:"x"`
	Y     float64    `json:"y"`
	Width float64    `json:"width"`
}

// Line is one laid-out line of runs.
type Line struct {
	Runs   []Run   `json:"runs"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Ascent float64 `json:"ascent"`
}

// Block is the laid-out form of one Text: lines with absolute positions,
// plus the overall bounds. Origin is the top-left corner of the bounds;
// where it sits relative to the anchor is determined by the alignment.
type Block struct {
	Lines  []Line  `json:"lines"`
	Origin Point   `json:"origin"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Layout places t relative to anchor according to its alignment.
//
// Sections are split on explicit newlines; a style never spans a line
// break. Each line is aligned horizontally against the anchor by its own
// width (left: grows rightward from the anchor; center: symmetric; right:
// grows leftward). The block as a whole is aligned vertically by its total
// height (top: grows downward; center: symmetric; bottom: grows upward).
// Empty sections become zero-width runs; an empty Text yields a block with
// no lines.
func Layout(t text.Text, anchor Point, m Measurer) (*Block, error) {
	if m == nil {
		return nil, fmt.Errorf("排版需要一个 Measurer")
	}

	lines, err := measureLines(t, m)
	if err != nil {
		return nil, err
	}

	block := &Block{Lines: lines}
	for _, ln := range lines {
		if ln.Width > block.Width {
			block.Width = ln.Width
		}
		block.Height += ln.Height
	}

	// 垂直方向：整块相对锚点对齐。
	top := anchor.Y
	switch t.Alignment.Vertical {
	case text.VAlignTop:
		// bounds begin at the anchor
	case text.VAlignCenter:
		top -= block.Height / 2
	case text.VAlignBottom:
		top -= block.Height
	}

	// 水平方向：逐行按各自宽度相对锚点对齐。
	left := anchor.X
	cursorY := top
	for i := range block.Lines {
		ln := &block.Lines[i]
		startX := anchor.X
		switch t.Alignment.Horizontal {
		case text.HAlignLeft:
			// bounds begin at the anchor
		case text.HAlignCenter:
			startX -= ln.Width / 2
		case text.HAlignRight:
			startX -= ln.Width
		}
		if i == 0 || startX < left {
			left = startX
		}
		baseline := cursorY + ln.Ascent
		x := startX
		for j := range ln.Runs {
			ln.Runs[j].X = x
			ln.Runs[j].Y = baseline
			x += ln.Runs[j].Width
		}
		cursorY += ln.Height
	}
	block.Origin = Point{X: left, Y: top}
	return block, nil
}

// measureLines splits sections on newlines and measures every fragment.
func measureLines(t text.Text, m Measurer) ([]Line, error) {
	if len(t.Sections) == 0 {
		return nil, nil
	}

	lines := []Line{{}}
	current := func() *Line { return &lines[len(lines)-1] }
	for _, section := range t.Sections {
		fragments := strings.Split(section.Value, "\n")
		for i, frag := range fragments {
			if i > 0 {
				lines = append(lines, Line{})
			}
			ext, err := m.Measure(frag, section.Style)
			if err != nil {
				return nil, fmt.Errorf("测量文本片段失败: %w", err)
			}
			ln := current()
			ln.Runs = append(ln.Runs, Run{Value: frag, Style: section.Style, Width: ext.Width})
			ln.Width += ext.Width
			if ext.Height > ln.Height {
				ln.Height = ext.Height
			}
			if ext.Ascent > ln.Ascent {
				ln.Ascent = ext.Ascent
			}
		}
	}
	return lines, nil
}
