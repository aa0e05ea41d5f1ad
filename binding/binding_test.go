package binding

import (
	"testing"

	"github.com/ZRonchy/vellum/text"
)

func sampleData() any {
	return map[string]any{
		"user": map[string]any{"name": "Ada"},
		"items": []any{
			map[string]any{"name": "pen"},
			map[string]any{"name": "ink"},
		},
		"page": map[string]any{"number": 3},
	}
}

func TestInterpolate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello, ${user.name}!", "Hello, Ada!"},
		{"${items[1].name}", "ink"},
		{"page ${page.number}", "page 3"},
		{"no placeholders", "no placeholders"},
		// 未命中的路径保留原占位符
		{"${missing.path}", "${missing.path}"},
		{"${items[9].name}", "${items[9].name}"},
		{"${}", "${}"},
	}
	for _, tc := range cases {
		if got := Interpolate(tc.in, sampleData()); got != tc.want {
			t.Fatalf("Interpolate(%q) = %q，期望 %q", tc.in, got, tc.want)
		}
	}
}

func TestInterpolateNilData(t *testing.T) {
	if got := Interpolate("${user.name}", nil); got != "${user.name}" {
		t.Fatalf("无数据时应保留原文: %q", got)
	}
}

func TestExpandCopiesText(t *testing.T) {
	orig := text.NewSections([]string{"Hello, ${user.name}!", "${page.number}"},
		text.DefaultStyle(), text.Alignment{Horizontal: text.HAlignRight})

	got := Expand(orig, sampleData())

	if got.Sections[0].Value != "Hello, Ada!" || got.Sections[1].Value != "3" {
		t.Fatalf("Expand 结果错误: %+v", got.Sections)
	}
	if got.Alignment != orig.Alignment {
		t.Fatalf("Expand 应保留对齐: %+v", got.Alignment)
	}
	// 原值不被修改
	if orig.Sections[0].Value != "Hello, ${user.name}!" {
		t.Fatalf("Expand 修改了原值: %q", orig.Sections[0].Value)
	}
	// 样式原样保留
	if got.Sections[0].Style != orig.Sections[0].Style {
		t.Fatalf("Expand 不应改动样式")
	}
}

func TestExpandNilData(t *testing.T) {
	orig := text.New("${x}", text.DefaultStyle(), text.Alignment{})
	got := Expand(orig, nil)
	if got.Sections[0].Value != "${x}" {
		t.Fatalf("无数据时 Expand 应为恒等拷贝: %q", got.Sections[0].Value)
	}
	got.Sections[0].Value = "mutated"
	if orig.Sections[0].Value != "${x}" {
		t.Fatalf("Expand 返回值应与原值独立")
	}
}
