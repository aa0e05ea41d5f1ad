package canvasrenderer

import (
	"bytes"
	"fmt"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ZRonchy/vellum/font"
	"github.com/ZRonchy/vellum/renderer"
	"github.com/ZRonchy/vellum/text"
	"github.com/ZRonchy/vellum/typeset"
)

// Renderer draws typeset documents via github.com/tdewolff/canvas and
// doubles as the canvas-backed Measurer for the typesetting pass.
type Renderer struct {
	fonts *font.Registry
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ typeset.Measurer  = (*Renderer)(nil)
)

// NewRenderer creates a renderer measuring and drawing with fonts from reg.
func NewRenderer(reg *font.Registry) *Renderer {
	return &Renderer{fonts: reg}
}

// Measure 实现 typeset.Measurer：用 canvas 字体面测量单行内容。
// style.FontSize 为 pt；返回的宽高沿用 canvas 字体度量的页面单位。
func (r *Renderer) Measure(value string, style text.Style) (typeset.Extents, error) {
	face, err := r.fonts.Face(style.Font, style.FontSize, style.Color)
	if err != nil {
		return typeset.Extents{}, err
	}
	metrics := face.Metrics()
	return typeset.Extents{
		Width:  face.TextWidth(value),
		Height: metrics.LineHeight,
		Ascent: metrics.Ascent,
	}, nil
}

// Render renders the document into a single-page PDF byte slice.
func (r *Renderer) Render(doc *typeset.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if doc.Width <= 0 || doc.Height <= 0 {
		return nil, fmt.Errorf("页面尺寸非法: %g x %g", doc.Width, doc.Height)
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, doc.Width, doc.Height, nil)
	c := canvas.New(doc.Width, doc.Height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与排版保持左上角为原点

	for _, block := range doc.Blocks {
		if err := r.drawBlock(ctx, block); err != nil {
			return nil, err
		}
	}
	for _, box := range doc.Boxes {
		if err := r.drawBox(ctx, box); err != nil {
			return nil, err
		}
	}
	c.RenderTo(writer)

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// drawBlock draws anchor-placed runs at their precomputed positions.
func (r *Renderer) drawBlock(ctx *canvas.Context, block typeset.Block) error {
	for _, line := range block.Lines {
		for _, run := range line.Runs {
			if run.Value == "" {
				continue // zero-width run
			}
			face, err := r.fonts.Face(run.Style.Font, run.Style.FontSize, run.Style.Color)
			if err != nil {
				return err
			}
			// 位置已由 typeset 计算好，这里统一按左对齐绘制。
			ctx.DrawText(run.X, run.Y, canvas.NewTextLine(face, run.Value, canvas.Left))
		}
	}
	return nil
}

// drawBox defers placement to canvas: the sections become rich-text spans
// with their own faces, and the engine aligns the content inside the
// declared bounds using the converted alignment.
func (r *Renderer) drawBox(ctx *canvas.Context, box typeset.BoxedText) error {
	if len(box.Text.Sections) == 0 {
		return nil
	}

	var rich *canvas.RichText
	for _, s := range box.Text.Sections {
		face, err := r.fonts.Face(s.Style.Font, s.Style.FontSize, s.Style.Color)
		if err != nil {
			return err
		}
		if rich == nil {
			rich = canvas.NewRichText(face)
		}
		rich.WriteFace(face, s.Value)
	}

	halign := box.Text.Alignment.Horizontal.Canvas()
	valign := box.Text.Alignment.Vertical.Canvas()
	ctx.DrawText(box.X, box.Y, rich.ToText(box.Width, box.Height, halign, valign, nil))
	return nil
}
