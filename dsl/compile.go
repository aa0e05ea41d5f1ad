package dsl

// 本文件将 sheet AST 编译为可排版的模型：注册字体、解析样式继承链，
// 并把每个 text 声明转换为带锚点的 text.Text。

import (
	"fmt"

	"github.com/ZRonchy/vellum/font"
	"github.com/ZRonchy/vellum/rgba"
	"github.com/ZRonchy/vellum/text"
	"github.com/ZRonchy/vellum/unit"
)

// Default page size (A4 portrait, mm) used when a sheet omits `size`.
const (
	DefaultWidthMM  = 210.0
	DefaultHeightMM = 297.0
)

// Sheet is the compiled form of a sheet document.
type Sheet struct {
	Name    string
	Version string
	Width   float64 // mm
	Height  float64 // mm
	Styles  map[string]text.Style
	Blocks  []TextBlock
}

// TextBlock is one compiled text block: the styled text plus its page
// placement. Anchor coordinates are mm from the page's top-left corner.
// BoxWidth and BoxHeight are zero unless the declaration carried a `box`
// clause.
type TextBlock struct {
	Name      string
	Text      text.Text
	X, Y      float64
	BoxWidth  float64
	BoxHeight float64
}

// HasBox reports whether the block declared explicit bounds.
func (b TextBlock) HasBox() bool { return b.BoxWidth > 0 && b.BoxHeight > 0 }

// rawStyle keeps a style declaration's own properties before inheritance
// resolution.
type rawStyle struct {
	extends  string
	font     string
	hasFont  bool
	size     unit.Length
	hasSize  bool
	color    rgba.Color
	hasColor bool
}

// Compile turns a parsed document into a Sheet, registering declared fonts
// into reg. Font data itself is not loaded here; the registry defers that
// to first use.
func Compile(doc *Document, reg *font.Registry) (*Sheet, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档为空")
	}
	if reg == nil {
		return nil, fmt.Errorf("字体注册表不能为空")
	}

	sheet := &Sheet{
		Name:    doc.Name,
		Version: doc.Version,
		Width:   DefaultWidthMM,
		Height:  DefaultHeightMM,
		Styles:  map[string]text.Style{},
	}

	raw := map[string]rawStyle{}
	for _, decl := range doc.Decls {
		switch {
		case decl.Size != nil:
			sheet.Width = unit.Parse(decl.Size.Width).ToMM()
			sheet.Height = unit.Parse(decl.Size.Height).ToMM()
			if sheet.Width <= 0 || sheet.Height <= 0 {
				return nil, fmt.Errorf("页面尺寸非法: %s %s", decl.Size.Width, decl.Size.Height)
			}
		case decl.Font != nil:
			if err := registerFont(decl.Font, reg); err != nil {
				return nil, err
			}
		case decl.Style != nil:
			rs, err := parseStyleDecl(decl.Style)
			if err != nil {
				return nil, err
			}
			raw[decl.Style.Name] = rs
		}
	}

	if err := resolveStyles(raw, reg, sheet.Styles); err != nil {
		return nil, err
	}

	for _, decl := range doc.Decls {
		if decl.Text == nil {
			continue
		}
		block, err := compileText(decl.Text, sheet.Styles)
		if err != nil {
			return nil, err
		}
		sheet.Blocks = append(sheet.Blocks, block)
	}
	return sheet, nil
}

func registerFont(decl *FontDecl, reg *font.Registry) error {
	attrs := assignments(decl.Block)
	src := attrs["src"].Text()
	if src == "" {
		return fmt.Errorf("字体 %s 缺少 src", decl.Name)
	}
	reg.Register(decl.Name, font.Source{Path: src, Style: attrs["style"].Text()})
	return nil
}

func parseStyleDecl(decl *StyleDecl) (rawStyle, error) {
	rs := rawStyle{}
	for key, val := range assignments(decl.Block) {
		switch key {
		case "extends":
			rs.extends = val.Text()
		case "font":
			rs.font = val.Text()
			rs.hasFont = true
		case "size":
			rs.size = unit.Parse(val.Text())
			rs.hasSize = true
		case "color":
			col, err := rgba.FromHex(val.Text())
			if err != nil {
				return rawStyle{}, fmt.Errorf("样式 %s: %w", decl.Name, err)
			}
			rs.color = col
			rs.hasColor = true
		default:
			return rawStyle{}, fmt.Errorf("样式 %s 含未知属性 %q", decl.Name, key)
		}
	}
	return rs, nil
}

// resolveStyles flattens extends chains into concrete styles, rejecting
// unknown parents and cycles. Resolution is order-independent.
func resolveStyles(raw map[string]rawStyle, reg *font.Registry, out map[string]text.Style) error {
	var resolve func(name string, trail map[string]bool) (text.Style, error)
	resolve = func(name string, trail map[string]bool) (text.Style, error) {
		if st, ok := out[name]; ok {
			return st, nil
		}
		rs, ok := raw[name]
		if !ok {
			return text.Style{}, fmt.Errorf("引用了未声明的样式 %q", name)
		}
		if trail[name] {
			return text.Style{}, fmt.Errorf("样式 %q 的 extends 链存在循环", name)
		}
		trail[name] = true

		base := text.DefaultStyle()
		if rs.extends != "" {
			parent, err := resolve(rs.extends, trail)
			if err != nil {
				return text.Style{}, err
			}
			base = parent
		}
		if rs.hasFont {
			h, ok := reg.Lookup(rs.font)
			if !ok {
				return text.Style{}, fmt.Errorf("样式 %q 引用了未声明的字体 %q", name, rs.font)
			}
			base = base.WithFont(h)
		}
		if rs.hasSize {
			base = base.WithFontSize(rs.size.ToPT())
		}
		if rs.hasColor {
			base = base.WithColor(rs.color)
		}
		out[name] = base
		return base, nil
	}

	for name := range raw {
		if _, err := resolve(name, map[string]bool{}); err != nil {
			return err
		}
	}
	return nil
}

func compileText(decl *TextDecl, styles map[string]text.Style) (TextBlock, error) {
	block := TextBlock{Name: decl.Name}
	if decl.At != nil {
		block.X = unit.Parse(decl.At.X).ToMM()
		block.Y = unit.Parse(decl.At.Y).ToMM()
	}
	if decl.Box != nil {
		block.BoxWidth = unit.Parse(decl.Box.Width).ToMM()
		block.BoxHeight = unit.Parse(decl.Box.Height).ToMM()
	}

	alignment, err := parseAlign(decl.Align)
	if err != nil {
		return TextBlock{}, fmt.Errorf("文本块 %s: %w", decl.Name, err)
	}

	t := text.Text{Alignment: alignment}
	for _, stmt := range decl.Block.Statements {
		switch {
		case stmt.Span != nil:
			style, ok := styles[stmt.Span.Style]
			if !ok {
				return TextBlock{}, fmt.Errorf("文本块 %s 引用了未声明的样式 %q", decl.Name, stmt.Span.Style)
			}
			t.Sections = append(t.Sections, text.NewSection(string(stmt.Span.Value), style))
		case stmt.Text != nil:
			// 裸字符串：优先使用约定样式 Body，否则使用默认样式。
			style, ok := styles["Body"]
			if !ok {
				style = text.DefaultStyle()
			}
			t.Sections = append(t.Sections, text.NewSection(string(stmt.Text.Value), style))
		case stmt.Assignment != nil:
			return TextBlock{}, fmt.Errorf("文本块 %s 内不支持属性赋值 %q", decl.Name, stmt.Assignment.Key)
		}
	}
	block.Text = t
	return block, nil
}

// parseAlign turns the optional align clause into an Alignment via the
// enums' text encoding (round-trips with MarshalText).
func parseAlign(clause *AlignClause) (text.Alignment, error) {
	var a text.Alignment
	if clause == nil {
		return a, nil
	}
	h, err := text.ParseHorizontalAlign(clause.Horizontal)
	if err != nil {
		return a, err
	}
	a.Horizontal = h
	if clause.Vertical != "" {
		v, err := text.ParseVerticalAlign(clause.Vertical)
		if err != nil {
			return a, err
		}
		a.Vertical = v
	}
	return a, nil
}

// assignments flattens a block's key:value statements into a map. Later
// duplicates win.
func assignments(block *Block) map[string]*Value {
	out := map[string]*Value{}
	if block == nil {
		return out
	}
	for _, stmt := range block.Statements {
		if stmt.Assignment != nil {
			out[stmt.Assignment.Key] = stmt.Assignment.Value
		}
	}
	return out
}
