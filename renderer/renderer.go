package renderer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ByLCY/timeline/layout"
)

// Format 是输出文件的格式。
type Format string

const (
	FormatPDF Format = "pdf"
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// Renderer 将布局得到的 Scene 输出为最终文件。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(scene *layout.Scene, format Format) ([]byte, error)
}

// ParseFormat 解析格式名，大小写不敏感。
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "."))); f {
	case FormatPDF, FormatSVG, FormatPNG:
		return f, nil
	default:
		return "", fmt.Errorf("不支持的输出格式 %q", name)
	}
}

// FormatFromPath 根据文件扩展名推断输出格式。
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("输出文件 %s 缺少扩展名", path)
	}
	return ParseFormat(ext)
}
