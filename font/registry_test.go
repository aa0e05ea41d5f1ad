package font

import (
	"fmt"
	"testing"

	"github.com/tdewolff/canvas"
)

func TestZeroHandle(t *testing.T) {
	var h Handle
	if !h.IsZero() {
		t.Fatalf("零值句柄应为空")
	}
	if h.String() != "font(none)" {
		t.Fatalf("空句柄的调试输出错误: %q", h.String())
	}
	var h2 Handle
	if h != h2 {
		t.Fatalf("零值句柄之间应相等")
	}
}

func TestRegisterReturnsStableHandles(t *testing.T) {
	reg := NewRegistry("")
	a := reg.Register("Body", Source{Path: "a.ttf"})
	b := reg.Register("Title", Source{Path: "b.ttf"})

	if a.IsZero() || b.IsZero() {
		t.Fatalf("注册后应得到非零句柄")
	}
	if a == b {
		t.Fatalf("不同名字应得到不同句柄")
	}
	// 重复注册同名字体返回原句柄
	if again := reg.Register("Body", Source{Path: "other.ttf"}); again != a {
		t.Fatalf("重复注册应返回原句柄: %v vs %v", again, a)
	}
}

func TestLookupAndName(t *testing.T) {
	reg := NewRegistry("")
	h := reg.Register("Body", Source{Path: "a.ttf"})

	got, ok := reg.Lookup("Body")
	if !ok || got != h {
		t.Fatalf("Lookup 失败: %v %v", got, ok)
	}
	if _, ok := reg.Lookup("Missing"); ok {
		t.Fatalf("未注册的名字不应命中")
	}
	if reg.Name(h) != "Body" {
		t.Fatalf("Name 输出错误: %q", reg.Name(h))
	}
	if reg.Name(Handle{}) != "" {
		t.Fatalf("空句柄的 Name 应为空串")
	}
}

func TestFamilyErrors(t *testing.T) {
	reg := NewRegistry("")
	if _, _, err := reg.Family(Handle{}); err == nil {
		t.Fatalf("空句柄应报错")
	}

	other := NewRegistry("")
	foreign := other.Register("X", Source{Path: "x.ttf"})
	if _, _, err := reg.Family(foreign); err == nil {
		t.Fatalf("他处注册的句柄应报错")
	}

	// 相对路径 + 无资源目录：加载时报错（注册时不报）
	h := reg.Register("Body", Source{Path: "missing.ttf"})
	if _, _, err := reg.Family(h); err == nil {
		t.Fatalf("缺少资源目录时相对路径应报错")
	}

	// 空来源
	empty := reg.Register("Empty", Source{})
	if _, _, err := reg.Family(empty); err == nil {
		t.Fatalf("无来源的字体应报错")
	}
}

// 回退加载器自身失败时，应报告原始错误而不是回退错误。
func TestFallbackFailureKeepsOriginalError(t *testing.T) {
	reg := NewRegistry("")
	h := reg.Register("Body", Source{})
	reg.SetFallback(func() (Source, error) {
		return Source{}, fmt.Errorf("fallback unavailable")
	})
	_, _, err := reg.Family(h)
	if err == nil {
		t.Fatalf("应报错")
	}
	if got := err.Error(); got == "fallback unavailable" {
		t.Fatalf("应保留原始错误，实际 %q", got)
	}
}

func TestParseStyle(t *testing.T) {
	cases := []struct {
		in   string
		want canvas.FontStyle
	}{
		{"", canvas.FontRegular},
		{"Regular", canvas.FontRegular},
		{"Bold", canvas.FontBold},
		{"Bold Italic", canvas.FontBold | canvas.FontItalic},
		{"SemiBold", canvas.FontSemiBold},
		{"ExtraBold", canvas.FontExtraBold},
		{"Black", canvas.FontBlack},
		{"Light", canvas.FontLight},
		{"Medium", canvas.FontMedium},
		{"oblique", canvas.FontRegular | canvas.FontItalic},
	}
	for _, tc := range cases {
		if got := ParseStyle(tc.in); got != tc.want {
			t.Fatalf("ParseStyle(%q) = %v，期望 %v", tc.in, got, tc.want)
		}
	}
}
