package fonts

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// 内置字体名称。
const (
	Regular = "builtin:regular"
	Bold    = "builtin:bold"
)

var builtin = map[string][]byte{
	"regular": goregular.TTF,
	"bold":    gobold.TTF,
}

// Load 返回字体的字节数据。path 可写为 "builtin:regular"、"builtin:bold"，
// 其它值视为本地 TTF/OTF 文件路径。
func Load(path string) ([]byte, error) {
	if name, ok := strings.CutPrefix(path, "builtin:"); ok {
		data, found := builtin[strings.ToLower(name)]
		if !found {
			return nil, fmt.Errorf("内置字体 %s 不存在", name)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", path, err)
	}
	return data, nil
}
