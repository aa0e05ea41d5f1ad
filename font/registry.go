package font

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
)

// Registry 是字体资源表：按名字注册来源，返回不透明 Handle，
// 首次使用时才真正读取并载入 canvas.FontFamily（懒加载 + 缓存）。
// 所有方法并发安全。
type Registry struct {
	baseDir string

	mu       sync.Mutex
	byName   map[string]Handle
	entries  map[Handle]*entry
	nextID   uint32
	fallback func() (Source, error)
}

type entry struct {
	name   string
	src    Source
	style  canvas.FontStyle
	family *canvas.FontFamily // nil until first Face/Family call
}

// Source provides font data either inline or by path. When both are set,
// Bytes wins. Path is resolved against the registry's base directory.
type Source struct {
	Bytes []byte
	Path  string
	// Style is a free-form style descriptor such as "Bold Italic"; it is
	// parsed into a canvas.FontStyle when the family is loaded.
	Style string
}

// NewRegistry creates a registry resolving relative font paths under baseDir.
func NewRegistry(baseDir string) *Registry {
	return &Registry{
		baseDir: baseDir,
		byName:  map[string]Handle{},
		entries: map[Handle]*entry{},
	}
}

// SetFallback installs a loader used when a handle's own source fails.
func (r *Registry) SetFallback(load func() (Source, error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = load
}

// Register records a named font source and returns its handle. Registering
// the same name again returns the original handle and keeps the first
// source (读取错误推迟到首次使用时才暴露，与注册无关).
func (r *Registry) Register(name string, src Source) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok := r.byName[name]; ok {
		return h
	}
	r.nextID++
	h := Handle{id: r.nextID}
	r.byName[name] = h
	r.entries[h] = &entry{name: name, src: src, style: ParseStyle(src.Style)}
	return h
}

// Lookup returns the handle registered under name, if any.
func (r *Registry) Lookup(name string) (Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.byName[name]
	return h, ok
}

// Name returns the registered name for a handle, or "" for unknown handles.
func (r *Registry) Name(h Handle) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[h]; ok {
		return e.name
	}
	return ""
}

// Family returns the loaded canvas font family for h, loading it on first
// use. The zero handle and unregistered handles are errors.
func (r *Registry) Family(h Handle) (*canvas.FontFamily, canvas.FontStyle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.familyLocked(h)
}

func (r *Registry) familyLocked(h Handle) (*canvas.FontFamily, canvas.FontStyle, error) {
	if h.IsZero() {
		return nil, canvas.FontRegular, fmt.Errorf("字体句柄为空（no font loaded）")
	}
	e, ok := r.entries[h]
	if !ok {
		return nil, canvas.FontRegular, fmt.Errorf("未知字体句柄 %s", h)
	}
	if e.family != nil {
		return e.family, e.style, nil
	}

	family := canvas.NewFontFamily(e.name)
	if err := r.loadInto(family, e); err != nil {
		if r.fallback == nil {
			return nil, canvas.FontRegular, err
		}
		fbSrc, fbErr := r.fallback()
		if fbErr != nil {
			return nil, canvas.FontRegular, err
		}
		fb := &entry{name: e.name, src: fbSrc, style: ParseStyle(fbSrc.Style)}
		family = canvas.NewFontFamily(e.name)
		if fbErr := r.loadInto(family, fb); fbErr != nil {
			return nil, canvas.FontRegular, err
		}
		e.style = fb.style
	}
	e.family = family
	return e.family, e.style, nil
}

// Face builds a font face for h at the given size (pt) and color.
func (r *Registry) Face(h Handle, sizePt float64, col color.Color) (*canvas.FontFace, error) {
	family, style, err := r.Family(h)
	if err != nil {
		return nil, err
	}
	return family.Face(sizePt, col, style, canvas.FontNormal), nil
}

func (r *Registry) loadInto(family *canvas.FontFamily, e *entry) error {
	data, err := r.loadBytes(e)
	if err != nil {
		return err
	}
	return family.LoadFont(data, 0, e.style)
}

func (r *Registry) loadBytes(e *entry) ([]byte, error) {
	if len(e.src.Bytes) > 0 {
		return e.src.Bytes, nil
	}
	if e.src.Path == "" {
		return nil, fmt.Errorf("字体 %s 缺少来源（Bytes/Path 均为空）", e.name)
	}
	path := e.src.Path
	if !filepath.IsAbs(path) {
		if r.baseDir == "" {
			return nil, fmt.Errorf("未指定资源目录时不允许使用相对字体路径：%s", path)
		}
		path = filepath.Join(r.baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", e.name, err)
	}
	return data, nil
}

// ParseStyle maps a free-form style descriptor onto canvas.FontStyle.
func ParseStyle(style string) canvas.FontStyle {
	if style == "" {
		return canvas.FontRegular
	}
	s := strings.ToLower(style)
	result := canvas.FontRegular
	switch {
	case strings.Contains(s, "black"):
		result = canvas.FontBlack
	case strings.Contains(s, "extrabold"):
		result = canvas.FontExtraBold
	case strings.Contains(s, "semibold"), strings.Contains(s, "demibold"):
		result = canvas.FontSemiBold
	case strings.Contains(s, "bold"):
		result = canvas.FontBold
	case strings.Contains(s, "medium"):
		result = canvas.FontMedium
	case strings.Contains(s, "light"):
		result = canvas.FontLight
	}
	if strings.Contains(s, "italic") || strings.Contains(s, "oblique") {
		result |= canvas.FontItalic
	}
	return result
}
