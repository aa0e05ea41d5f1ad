package rgba

import (
	"fmt"
	"strconv"
	"strings"
)

// Color 是线性浮点 RGBA 颜色，各分量取值 0-1。
// 作为纯值类型可直接用 == 比较；同时实现 image/color.Color，
// 以便 canvas 渲染端直接消费。
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// Named colors used as style defaults.
var (
	White = Color{R: 1, G: 1, B: 1, A: 1}
	Black = Color{R: 0, G: 0, B: 0, A: 1}
)

// New constructs a color from the four components without clamping.
func New(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// WithAlpha returns a copy of c with the alpha component replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// RGBA implements image/color.Color (alpha-premultiplied 16-bit components).
func (c Color) RGBA() (r, g, b, a uint32) {
	r = component(c.R * c.A)
	g = component(c.G * c.A)
	b = component(c.B * c.A)
	a = component(c.A)
	return
}

func component(v float64) uint32 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xffff
	}
	return uint32(v*0xffff + 0.5)
}

// FromHex 解析 #rgb、#rrggbb 或 #rrggbbaa 形式的十六进制颜色。
func FromHex(s string) (Color, error) {
	v := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(v) {
	case 3:
		r, err1 := nibble(v[0:1])
		g, err2 := nibble(v[1:2])
		b, err3 := nibble(v[2:3])
		if err := firstErr(err1, err2, err3); err != nil {
			return Color{}, fmt.Errorf("解析颜色 %q 失败: %w", s, err)
		}
		return Color{R: r, G: g, B: b, A: 1}, nil
	case 6, 8:
		r, err1 := octet(v[0:2])
		g, err2 := octet(v[2:4])
		b, err3 := octet(v[4:6])
		a := 1.0
		var err4 error
		if len(v) == 8 {
			a, err4 = octet(v[6:8])
		}
		if err := firstErr(err1, err2, err3, err4); err != nil {
			return Color{}, fmt.Errorf("解析颜色 %q 失败: %w", s, err)
		}
		return Color{R: r, G: g, B: b, A: a}, nil
	default:
		return Color{}, fmt.Errorf("颜色 %q 长度非法，应为 #rgb/#rrggbb/#rrggbbaa", s)
	}
}

func nibble(s string) (float64, error) {
	n, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0, err
	}
	return float64(n*16+n) / 255.0, nil
}

func octet(s string) (float64, error) {
	n, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0, err
	}
	return float64(n) / 255.0, nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
