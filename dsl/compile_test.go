package dsl_test

import (
	"math"
	"testing"

	"github.com/ZRonchy/vellum/dsl"
	"github.com/ZRonchy/vellum/font"
	"github.com/ZRonchy/vellum/rgba"
	"github.com/ZRonchy/vellum/text"
	"github.com/ZRonchy/vellum/unit"
)

func compile(t *testing.T, src string) (*dsl.Sheet, *font.Registry) {
	t.Helper()
	doc, err := dsl.ParseString(src)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	reg := font.NewRegistry("")
	sheet, err := dsl.Compile(doc, reg)
	if err != nil {
		t.Fatalf("编译失败: %v", err)
	}
	return sheet, reg
}

func TestCompileSampleSheet(t *testing.T) {
	sheet, reg := compile(t, sampleSheet)

	if sheet.Name != "Demo" || sheet.Version != "v1" {
		t.Fatalf("sheet 头错误: %s %s", sheet.Name, sheet.Version)
	}
	if sheet.Width != 210 || sheet.Height != 297 {
		t.Fatalf("页面尺寸错误: %g x %g", sheet.Width, sheet.Height)
	}

	inter, ok := reg.Lookup("Inter")
	if !ok || inter.IsZero() {
		t.Fatalf("字体 Inter 未注册")
	}
	bold, _ := reg.Lookup("InterBold")
	if bold == inter {
		t.Fatalf("两个字体不应共享句柄")
	}

	body, ok := sheet.Styles["Body"]
	if !ok {
		t.Fatalf("缺少样式 Body")
	}
	if body.Font != inter {
		t.Fatalf("Body 字体错误: %v", body.Font)
	}
	if body.FontSize != 12 {
		t.Fatalf("Body 字号应为 12pt，实际 %g", body.FontSize)
	}
	wantColor, _ := rgba.FromHex("#333333")
	if body.Color != wantColor {
		t.Fatalf("Body 颜色错误: %+v", body.Color)
	}

	// Title extends Body 并覆盖字体/字号/颜色
	title := sheet.Styles["Title"]
	if title.Font != bold || title.FontSize != 60 || title.Color != rgba.White {
		t.Fatalf("Title 继承解析错误: %+v", title)
	}
}

func TestCompileBlocks(t *testing.T) {
	sheet, _ := compile(t, sampleSheet)
	if len(sheet.Blocks) != 2 {
		t.Fatalf("期望 2 个文本块，实际 %d", len(sheet.Blocks))
	}

	banner := sheet.Blocks[0]
	if banner.Name != "Banner" {
		t.Fatalf("块顺序错误: %s", banner.Name)
	}
	if banner.X != 105 || banner.Y != 40 || banner.HasBox() {
		t.Fatalf("Banner 位置错误: %+v", banner)
	}
	want := text.Alignment{Horizontal: text.HAlignCenter, Vertical: text.VAlignCenter}
	if banner.Text.Alignment != want {
		t.Fatalf("Banner 对齐错误: %+v", banner.Text.Alignment)
	}
	if len(banner.Text.Sections) != 2 {
		t.Fatalf("Banner 应有 2 个 section，实际 %d", len(banner.Text.Sections))
	}
	if banner.Text.Sections[0].Value != "hello " || banner.Text.Sections[1].Value != "world!" {
		t.Fatalf("Banner section 内容错误: %+v", banner.Text.Sections)
	}
	// 同名样式的两个 span 必须样式相等
	if banner.Text.Sections[0].Style != banner.Text.Sections[1].Style {
		t.Fatalf("同名样式的 span 应相等")
	}

	footer := sheet.Blocks[1]
	if !footer.HasBox() || footer.BoxWidth != 180 || footer.BoxHeight != 12 {
		t.Fatalf("Footer box 错误: %+v", footer)
	}
	if footer.Text.Alignment.Vertical != text.VAlignBottom {
		t.Fatalf("Footer 垂直对齐错误: %v", footer.Text.Alignment.Vertical)
	}
	// 裸字符串回退到 Body 样式
	if footer.Text.Sections[0].Style != sheet.Styles["Body"] {
		t.Fatalf("裸字符串应使用 Body 样式")
	}
}

// 编译结果的 TextBlock 与 AST 的 Block 是两个独立类型，可同时使用。
func TestTextBlockHasBox(t *testing.T) {
	if (dsl.TextBlock{}).HasBox() {
		t.Fatalf("零值 TextBlock 不应有 box")
	}
	if !(dsl.TextBlock{BoxWidth: 180, BoxHeight: 12}).HasBox() {
		t.Fatalf("宽高齐备时 HasBox 应为真")
	}
	if (dsl.TextBlock{BoxWidth: 180}).HasBox() {
		t.Fatalf("缺少高度时 HasBox 应为假")
	}
	var ast dsl.Block
	if len(ast.Statements) != 0 {
		t.Fatalf("零值 AST Block 不应有语句")
	}
}

func TestCompileUnitConversion(t *testing.T) {
	sheet, _ := compile(t, `sheet S v1 {
  size 21cm 297mm
  style Big { size: 1in }
  text T at 1cm 2cm { span Big "x" }
}`)
	if math.Abs(sheet.Width-210) > 1e-9 {
		t.Fatalf("21cm 应换算为 210mm，实际 %g", sheet.Width)
	}
	b := sheet.Blocks[0]
	if math.Abs(b.X-10) > 1e-9 || math.Abs(b.Y-20) > 1e-9 {
		t.Fatalf("锚点换算错误: %+v", b)
	}
	// 1in = 72pt（按 mm 中转允许微小误差）
	got := sheet.Styles["Big"].FontSize
	if math.Abs(got-25.4*unit.MmToPt) > 1e-6 {
		t.Fatalf("1in 字号换算错误: %g", got)
	}
}

func TestCompileDefaults(t *testing.T) {
	sheet, _ := compile(t, `sheet S v1 { text T { "x" } }`)
	if sheet.Width != dsl.DefaultWidthMM || sheet.Height != dsl.DefaultHeightMM {
		t.Fatalf("缺省页面应为 A4: %g x %g", sheet.Width, sheet.Height)
	}
	b := sheet.Blocks[0]
	if b.X != 0 || b.Y != 0 {
		t.Fatalf("缺省锚点应为原点: %+v", b)
	}
	if b.Text.Alignment != (text.Alignment{}) {
		t.Fatalf("缺省对齐应为 left/top: %+v", b.Text.Alignment)
	}
	// 没有 Body 样式时裸字符串使用默认样式
	if b.Text.Sections[0].Style != text.DefaultStyle() {
		t.Fatalf("裸字符串应回退到默认样式: %+v", b.Text.Sections[0].Style)
	}
}

func TestCompileErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"字体缺少 src", `sheet S v1 { font F { style: "Bold" } }`},
		{"引用未声明样式", `sheet S v1 { text T { span Nope "x" } }`},
		{"引用未声明字体", `sheet S v1 { style A { font: Nope } }`},
		{"extends 循环", `sheet S v1 { style A { extends: B } style B { extends: A } }`},
		{"extends 未声明", `sheet S v1 { style A { extends: Missing } }`},
		{"未知样式属性", `sheet S v1 { style A { weight: 700 } }`},
		{"非法对齐", `sheet S v1 { text T align diagonal { "x" } }`},
		{"非法页面尺寸", `sheet S v1 { size 0mm 297mm }`},
		{"文本块内赋值", `sheet S v1 { text T { foo: 1 } }`},
	}
	for _, tc := range cases {
		doc, err := dsl.ParseString(tc.src)
		if err != nil {
			t.Fatalf("%s: 解析阶段就失败了: %v", tc.name, err)
		}
		if _, err := dsl.Compile(doc, font.NewRegistry("")); err == nil {
			t.Fatalf("%s: 编译应失败", tc.name)
		}
	}
}

func TestCompileNilArguments(t *testing.T) {
	if _, err := dsl.Compile(nil, font.NewRegistry("")); err == nil {
		t.Fatalf("nil 文档应报错")
	}
	doc, _ := dsl.ParseString(`sheet S v1 { }`)
	if _, err := dsl.Compile(doc, nil); err == nil {
		t.Fatalf("nil 注册表应报错")
	}
}
