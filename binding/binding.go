// Package binding 把图表文本中的 ${path} 占位符替换为外部 JSON 数据中的值。
package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate 将文本中的 ${path.to.value} 替换为 data 中的值。
// 路径支持 a.b、a[0] 与 a.0 三种写法；data 为空或路径不存在时保留原占位符。
func Interpolate(text string, data any) string {
	if data == nil || !strings.Contains(text, "${") {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(match[2 : len(match)-1])
		if path == "" {
			return match
		}
		val, ok := Lookup(data, path)
		if !ok {
			return match
		}
		return format(val)
	})
}

// Lookup 沿 path 在 JSON 解码得到的 map/slice 中查找值。
func Lookup(data any, path string) (any, bool) {
	current := data
	for _, key := range splitPath(path) {
		switch c := current.(type) {
		case map[string]any:
			v, ok := c[key]
			if !ok {
				return nil, false
			}
			current = v
		case []any:
			idx, err := strconv.Atoi(key)
			if err != nil || idx < 0 || idx >= len(c) {
				return nil, false
			}
			current = c[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// splitPath 把 a.b[0].c 拆成 [a b 0 c]。
func splitPath(path string) []string {
	path = strings.NewReplacer("[", ".", "]", "").Replace(path)
	var keys []string
	for _, k := range strings.Split(path, ".") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// format 让 JSON 中的整数不带小数点输出，例如 2010 而不是 2010.000000。
func format(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
