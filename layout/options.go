package layout

import (
	"log/slog"
	"unicode/utf8"
)

// Options 配置布局阶段所需的依赖，例如文本测量后端与绘图表面。
type Options struct {
	// Measurer 测量文本尺寸；为空时使用 MonospaceMeasurer。
	Measurer TextMeasurer
	// NewCanvas 创建绘图表面；为空时创建基于 Measurer 的 Scene。
	NewCanvas func(width, height float64) Canvas
	// Logger 输出调试信息；为空时丢弃。
	Logger *slog.Logger
}

// TextMeasurer 负责返回单行文本在给定字体下的宽与高（px）。
type TextMeasurer interface {
	MeasureText(text string, font Font) (width, height float64)
}

// MonospaceMeasurer 按固定字宽估算文本尺寸，不依赖任何字体文件。
// 测试与无字体环境（例如只输出调试 JSON）使用它。
type MonospaceMeasurer struct {
	// Advance 是每个字符占字号的比例，<= 0 时取 0.6。
	Advance float64
	// LineHeight 是行高占字号的比例，<= 0 时取 1.2。
	LineHeight float64
}

// MeasureText 实现 TextMeasurer。粗体按 10% 加宽。
func (m MonospaceMeasurer) MeasureText(text string, font Font) (float64, float64) {
	adv, lh := m.Advance, m.LineHeight
	if adv <= 0 {
		adv = 0.6
	}
	if lh <= 0 {
		lh = 1.2
	}
	size := font.Size
	if size <= 0 {
		size = defaultFontSize
	}
	if font.Bold() {
		adv *= 1.1
	}
	return float64(utf8.RuneCountInString(text)) * size * adv, size * lh
}

func (o Options) withDefaults() Options {
	if o.Measurer == nil {
		o.Measurer = MonospaceMeasurer{}
	}
	if o.NewCanvas == nil {
		measurer := o.Measurer
		o.NewCanvas = func(w, h float64) Canvas { return NewScene(w, h, measurer) }
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}
