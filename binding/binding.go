// Package binding substitutes ${path.to.value} placeholders with values
// from caller-provided data, section by section.
package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ZRonchy/vellum/text"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Expand 返回 t 的深拷贝，其中每个 section 的内容都做过占位符替换。
// 数据缺失或路径不存在时保留原占位符，不视为错误。
func Expand(t text.Text, data any) text.Text {
	out := t.Clone()
	if data == nil {
		return out
	}
	for i := range out.Sections {
		out.Sections[i].Value = Interpolate(out.Sections[i].Value, data)
	}
	return out
}

// Interpolate replaces every ${path} in s with the value found in data,
// leaving unresolved placeholders verbatim.
func Interpolate(s string, data any) string {
	if data == nil {
		return s
	}
	return exprPattern.ReplaceAllStringFunc(s, func(match string) string {
		path := strings.TrimSpace(match[2 : len(match)-1])
		if path == "" {
			return match
		}
		if val, ok := resolve(data, path); ok {
			return fmt.Sprint(val)
		}
		return match
	})
}

// resolve walks a dotted path with optional [idx] suffixes through nested
// maps and slices, e.g. "items[2].name".
func resolve(data any, path string) (any, bool) {
	current := data
	for _, seg := range strings.Split(path, ".") {
		name := seg
		var indexes []int
		if i := strings.IndexByte(seg, '['); i != -1 {
			name = seg[:i]
			rest := seg[i:]
			for strings.HasPrefix(rest, "[") {
				end := strings.IndexByte(rest, ']')
				if end == -1 {
					return nil, false
				}
				idx, err := strconv.Atoi(rest[1:end])
				if err != nil {
					return nil, false
				}
				indexes = append(indexes, idx)
				rest = rest[end+1:]
			}
		}

		if name != "" {
			m, ok := current.(map[string]any)
			if !ok {
				return nil, false
			}
			if current, ok = m[name]; !ok {
				return nil, false
			}
		}
		for _, idx := range indexes {
			arr, ok := current.([]any)
			if !ok || idx < 0 || idx >= len(arr) {
				return nil, false
			}
			current = arr[idx]
		}
	}
	return current, true
}
