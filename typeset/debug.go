package typeset

import (
	"encoding/json"
	"os"

	"github.com/ZRonchy/vellum/text"
)

// Document collects the laid-out content of one page, sized in mm.
// Blocks are anchor-placed by Layout; Boxes defer placement to the
// rendering engine, which aligns the text inside explicit bounds.
type Document struct {
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
	Blocks []Block     `json:"blocks"`
	Boxes  []BoxedText `json:"boxes,omitempty"`
}

// BoxedText is a text value with explicit bounds (mm, top-left corner).
// The engine converts the text's alignment into its own vocabulary to
// place the content within the box.
type BoxedText struct {
	Text   text.Text `json:"text"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
}

// WriteDebugJSON 将排版结果输出为 JSON，便于调试或可视化。
func WriteDebugJSON(doc *Document, path string) error {
	if doc == nil {
		return nil
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
