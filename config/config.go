// Package config 读取 YAML 格式的时间线图表文件。
//
// 文件给出容器尺寸、年份区间与各个分区：
//
//	width: 800
//	height: 400
//	start_year: 2000
//	end_year: 2015
//	origin: {x: 30, y: 30}
//	timeline_padding: [40, 40]
//	sections:
//	  - label: Work
//	    color: "#3366cc"
//	    entries:
//	      - start: 2010-02-07
//	        end: present
//	        title: Engineer
//	        organization: Acme
//
// 未写出的字段取 layout.DefaultConfig 的默认值，显式写出的零值原样保留。
// 未知字段直接报错。
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ByLCY/timeline/layout"
)

// File 对应 YAML 文档本身。
type File struct {
	// Width/Height 是容器尺寸（像素）。
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	StartYear int `yaml:"start_year"`
	EndYear   int `yaml:"end_year"`

	// Origin 缺省为 {x: 30, y: 30}；写出 {x: 0, y: 0} 时按零处理。
	Origin *Origin `yaml:"origin,omitempty"`

	// TimelinePadding = [标题列宽度, 条目行距]。
	// 默认: [40, 40]
	TimelinePadding []float64 `yaml:"timeline_padding,omitempty"`

	Sections []SectionFile `yaml:"sections"`
}

// Origin 是主轴起点。
type Origin struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// SectionFile 是一个带标签的分区。
type SectionFile struct {
	Label   string      `yaml:"label"`
	Color   string      `yaml:"color"`
	Entries []EntryFile `yaml:"entries"`
}

// EntryFile 是分区内的一个条目。日期支持 YYYY、YYYY-MM、YYYY-MM-DD 与 present，
// 省略 end 表示持续至今。
type EntryFile struct {
	Start        string `yaml:"start"`
	End          string `yaml:"end"`
	Title        string `yaml:"title"`
	Organization string `yaml:"organization"`
}

// Load 读取并转换 path 处的图表文件。
func Load(path string) (layout.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return layout.Definition{}, fmt.Errorf("无法读取图表文件 %s: %w", path, err)
	}
	def, err := Parse(bytes.NewReader(data))
	if err != nil {
		return layout.Definition{}, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Parse 从 r 解码 YAML 图表。
func Parse(r io.Reader) (layout.Definition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return layout.Definition{}, errors.New("图表文件为空")
		}
		return layout.Definition{}, fmt.Errorf("解析图表 YAML 失败: %w", err)
	}
	return f.Definition()
}

// Definition 将文件内容转换为图表定义，从 DefaultConfig 起步。
func (f File) Definition() (layout.Definition, error) {
	cfg := layout.DefaultConfig()
	if f.StartYear != 0 {
		cfg.StartYear = f.StartYear
	}
	if f.EndYear != 0 {
		cfg.EndYear = f.EndYear
	}
	if f.Origin != nil {
		cfg.Origin = layout.Point{X: f.Origin.X, Y: f.Origin.Y}
	}
	if f.TimelinePadding != nil {
		if len(f.TimelinePadding) != 2 {
			return layout.Definition{}, layout.NewConfigurationError("timeline_padding", f.TimelinePadding, "需要恰好两个数值", nil)
		}
		cfg.TimelinePadding = [2]float64{f.TimelinePadding[0], f.TimelinePadding[1]}
	}

	for i, sf := range f.Sections {
		s := layout.Section{Label: sf.Label, Color: layout.ColorAxis}
		if sf.Color != "" {
			c, err := layout.ParseColor(sf.Color)
			if err != nil {
				return layout.Definition{}, layout.NewConfigurationError(fmt.Sprintf("sections[%d].color", i), sf.Color, "颜色无效", err)
			}
			s.Color = c
		}
		for j, ef := range sf.Entries {
			field := fmt.Sprintf("sections[%d].entries[%d]", i, j)
			start, err := layout.ParseDate(ef.Start)
			if err != nil {
				return layout.Definition{}, layout.NewConfigurationError(field+".start", ef.Start, "日期无效", err)
			}
			end, err := layout.ParseDate(ef.End)
			if err != nil {
				return layout.Definition{}, layout.NewConfigurationError(field+".end", ef.End, "日期无效", err)
			}
			s.Entries = append(s.Entries, layout.Entry{
				Start:        start,
				End:          end,
				Title:        ef.Title,
				Organization: ef.Organization,
			})
		}
		cfg.Sections = append(cfg.Sections, s)
	}

	return layout.Definition{Config: cfg, Width: f.Width, Height: f.Height}, nil
}
