package layout

import (
	"encoding/json"
	"os"
)

// DebugDump 是调试 JSON 的结构：图表尺寸、分区起点与按绘制顺序排列的图元。
type DebugDump struct {
	Width          float64   `json:"width"`
	Height         float64   `json:"height"`
	Axis           BBox      `json:"axis"`
	SectionOrigins []float64 `json:"sectionOrigins"`
	Sections       []BBox    `json:"sections"`
	Shapes         []*Shape  `json:"shapes,omitempty"`
}

// Dump 汇总已绘制图表的布局结果。
func (c *Chart) Dump() DebugDump {
	d := DebugDump{
		Width:          c.width,
		Height:         c.height,
		Axis:           c.axis.BBox(),
		SectionOrigins: c.SectionOrigins(),
	}
	for _, s := range c.sections {
		d.Sections = append(d.Sections, s.BBox())
	}
	if scene, ok := c.Scene(); ok {
		d.Shapes = scene.Shapes()
	}
	return d
}

// WriteDebugJSON 将布局结果输出为 JSON，便于调试或可视化。
func WriteDebugJSON(c *Chart, path string) error {
	if c == nil {
		return nil
	}
	data, err := json.MarshalIndent(c.Dump(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
