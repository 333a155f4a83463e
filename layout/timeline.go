package layout

import "strconv"

const (
	pointWidth       = 10.0
	pointStrokeWidth = 2.0
	lineStrokeWidth  = 2.0
	labelFontSize    = 12.0
)

// TimelineOptions 控制一条时间线的绘制。
type TimelineOptions struct {
	// Range 非空时只画出该区间对应的线段，并隐藏区间外的年份点。
	Range *DateRange
	// Labels 在每个年份点上方标注年份，仅主轴使用。
	Labels bool
	// Color 为空时使用 ColorAxis。
	Color *Color
}

func (o TimelineOptions) color() Color {
	if o.Color != nil {
		return *o.Color
	}
	return ColorAxis
}

// PointOptions 描述一个年份点。
type PointOptions struct {
	Width       float64
	StrokeWidth float64
	Color       Color
	Label       string
}

// spanWidth 是从 x 开始、右侧留出 Origin.X 后可用的宽度，最小为 0。
func (c *Chart) spanWidth(x float64) float64 {
	return max(0, c.width-x-c.cfg.Origin.X)
}

// DrawTimeline 在 (x, y) 绘制一条水平时间线及其年份点。
// 带 Range 时线段按主轴日期区间等比例截取，年份点仍按完整跨度排布。
func (c *Chart) DrawTimeline(x, y float64, opts TimelineOptions) *Group {
	span := c.spanWidth(x)
	start, end := x, x+span
	if opts.Range != nil {
		full := c.cfg.Range()
		start = MapDateToX(opts.Range.Start, full.Start, full.End, x, span)
		end = MapDateToX(opts.Range.End, full.Start, full.End, x, span)
	}
	line := c.DrawHorizontalLine(start, y, end-start, Style{
		StrokeColor: opts.color(),
		StrokeWidth: lineStrokeWidth,
	})
	points := c.DrawTimelinePoints(x, y, span, opts)
	return NewGroup(line, points)
}

// DrawTimelinePoints 为 [StartYear, EndYear] 的每一年画一个点，首尾两点分别贴齐跨度两端。
func (c *Chart) DrawTimelinePoints(x, y, span float64, opts TimelineOptions) *Group {
	g := NewGroup()
	n := c.cfg.EndYear - c.cfg.StartYear + 1
	if n < 2 {
		return g
	}
	padding := (span - pointWidth*float64(n-1)) / float64(n-1)
	for i := range n {
		year := c.cfg.StartYear + i
		if opts.Range != nil && !opts.Range.Contains(yearStart(year)) {
			continue
		}
		po := PointOptions{
			Width:       pointWidth,
			StrokeWidth: pointStrokeWidth,
			Color:       opts.color(),
		}
		if opts.Labels {
			po.Label = strconv.Itoa(year)
		}
		g.Add(c.DrawPoint(x+float64(i)*(padding+pointWidth), y, po))
	}
	return g
}

// DrawPoint 画一个空心圆点，半径扣除描边宽度，使外径等于 Width。
// 有 Label 时在点的上方居中绘制文本。
func (c *Chart) DrawPoint(x, y float64, opts PointOptions) Element {
	if opts.Width <= 0 {
		opts.Width = pointWidth
	}
	white := ColorWhite
	circle := c.canvas.Circle(x, y, (opts.Width-opts.StrokeWidth)/2, Style{
		StrokeColor: opts.Color,
		StrokeWidth: opts.StrokeWidth,
		FillColor:   &white,
	})
	if opts.Label == "" {
		return circle
	}
	text := ColorText
	label := c.canvas.Text(x, y-labelFontSize, opts.Label, Style{
		FillColor: &text,
		FontSize:  labelFontSize,
		Anchor:    AnchorMiddle,
	})
	return NewGroup(circle, label)
}

// DrawHorizontalLine 画出路径 M x,y H x+width。
func (c *Chart) DrawHorizontalLine(x, y, width float64, st Style) Primitive {
	return c.canvas.Line(x, y, x+width, y, st)
}
