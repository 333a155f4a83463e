package layout

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// 该文件定义图表配置、样式与几何结果，供布局计算、渲染与调试 JSON 共用。

// 默认配置，与 DefaultConfig 保持一致。
const (
	DefaultStartYear        = 2000
	DefaultEndYear          = 2015
	DefaultOriginX          = 30.0
	DefaultOriginY          = 30.0
	DefaultTitleColumnWidth = 40.0
	DefaultRowPitch         = 40.0
)

// Config 描述一张时间线图表。构造 Chart 之后不再修改。
type Config struct {
	// StartYear/EndYear 是主轴覆盖的年份，两端都会画出年份点。
	StartYear int `json:"startYear"`
	EndYear   int `json:"endYear"`
	// Origin 是主轴相对标题列的起点，X 同时作为主轴右侧留白。
	Origin Point `json:"origin"`
	// TimelinePadding = [标题列宽度, 条目行距]。
	TimelinePadding [2]float64 `json:"timelinePadding"`
	Sections        []Section  `json:"sections"`
}

// DefaultConfig 返回全部字段为默认值的配置（不含分区）。
func DefaultConfig() Config {
	return Config{
		StartYear:       DefaultStartYear,
		EndYear:         DefaultEndYear,
		Origin:          Point{X: DefaultOriginX, Y: DefaultOriginY},
		TimelinePadding: [2]float64{DefaultTitleColumnWidth, DefaultRowPitch},
	}
}

// withDefaults 只把完全未设置的 Config{} 换成 DefaultConfig，其余配置原样使用。
func (c Config) withDefaults() Config {
	if c.StartYear == 0 && c.EndYear == 0 && c.Origin == (Point{}) &&
		c.TimelinePadding == ([2]float64{}) && len(c.Sections) == 0 {
		return DefaultConfig()
	}
	return c
}

// TitleColumnWidth 是分区标题列的宽度，同时作为分区的纵向留白。
func (c Config) TitleColumnWidth() float64 { return c.TimelinePadding[0] }

// RowPitch 是同一分区内相邻条目的固定行距。
func (c Config) RowPitch() float64 { return c.TimelinePadding[1] }

// Range 返回主轴覆盖的日期区间：[StartYear-01-01, EndYear-01-01]。
func (c Config) Range() DateRange {
	return DateRange{Start: yearStart(c.StartYear), End: yearStart(c.EndYear)}
}

// Section 是一个带标签的纵向分区，条目按顺序自上而下排列。
type Section struct {
	Label   string  `json:"label"`
	Color   Color   `json:"color"`
	Entries []Entry `json:"entries"`
}

// Entry 是分区内的一段经历。Start 为零值表示从主轴起点开始，End 为零值表示持续至今。
type Entry struct {
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	Title        string    `json:"title,omitempty"`
	Organization string    `json:"organization,omitempty"`
}

// Point 是画布上的一个坐标（像素）。
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DateRange 是闭区间 [Start, End]。
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains 判断 t 是否落在区间内（含端点）。
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Definition 是一个图表文件解析后的结果：配置加上容器尺寸。
type Definition struct {
	Config Config  `json:"config"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Hex 返回 #rrggbb 形式。
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", clampByte(c.R), clampByte(c.G), clampByte(c.B))
}

// 常用颜色。
var (
	ColorWhite = Color{R: 255, G: 255, B: 255}
	ColorText  = Color{R: 51, G: 51, B: 51}
	ColorAxis  = Color{R: 68, G: 68, B: 68}
)

// ParseColor 解析 #rgb、#rrggbb 与 #rrggbbaa（alpha 被忽略）。
func ParseColor(value string) (Color, error) {
	value = strings.TrimPrefix(strings.TrimSpace(value), "#")
	switch len(value) {
	case 3:
		value = strings.Repeat(value[0:1], 2) + strings.Repeat(value[1:2], 2) + strings.Repeat(value[2:3], 2)
	case 6, 8:
	default:
		return Color{}, fmt.Errorf("颜色值 #%s 无法解析", value)
	}
	var rgb [3]int
	for i := range rgb {
		v, err := strconv.ParseUint(value[2*i:2*i+2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("颜色值 #%s 无法解析: %w", value, err)
		}
		rgb[i] = int(v)
	}
	return Color{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
}

func clampByte(v int) int {
	return max(0, min(255, v))
}

// Anchor 是文本的水平锚点。
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// Style 是图元的绘制属性。透明度 <= 0 视为 1。
type Style struct {
	StrokeColor   Color   `json:"strokeColor"`
	StrokeWidth   float64 `json:"strokeWidth"` // 0 表示不描边
	StrokeOpacity float64 `json:"strokeOpacity,omitempty"`
	FillColor     *Color  `json:"fillColor,omitempty"` // 为空表示不填充
	FillOpacity   float64 `json:"fillOpacity,omitempty"`
	FontSize      float64 `json:"fontSize,omitempty"` // px
	FontWeight    string  `json:"fontWeight,omitempty"`
	Anchor        Anchor  `json:"anchor,omitempty"`
	Rotation      float64 `json:"rotation,omitempty"` // 角度，绕文本锚点旋转
}

// Font 返回文本测量所需的字体描述。
func (s Style) Font() Font {
	return Font{Size: s.FontSize, Weight: s.FontWeight}
}

// Fill 返回一个仅填充的样式。
func Fill(c Color, opacity float64) Style {
	return Style{FillColor: &c, FillOpacity: opacity}
}

// Font 描述文本测量与绘制所用的字体。
type Font struct {
	Size   float64 `json:"size"` // px
	Weight string  `json:"weight,omitempty"`
}

// Bold 判断字重是否为粗体。
func (f Font) Bold() bool {
	switch strings.ToLower(f.Weight) {
	case "bold", "bolder", "600", "700", "800", "900":
		return true
	}
	return false
}

// BBox 是图元或图元组的包围盒。
type BBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	X2     float64 `json:"x2"`
	Y2     float64 `json:"y2"`
}

// NewBBox 由左上角与宽高构造包围盒。
func NewBBox(x, y, w, h float64) BBox {
	return BBox{X: x, Y: y, Width: w, Height: h, X2: x + w, Y2: y + h}
}

// Union 返回两个包围盒的并集。
func (b BBox) Union(o BBox) BBox {
	x, y := min(b.X, o.X), min(b.Y, o.Y)
	x2, y2 := max(b.X2, o.X2), max(b.Y2, o.Y2)
	return NewBBox(x, y, x2-x, y2-y)
}

// Translate 返回平移后的包围盒。
func (b BBox) Translate(dx, dy float64) BBox {
	return NewBBox(b.X+dx, b.Y+dy, b.Width, b.Height)
}
