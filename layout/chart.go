package layout

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

// Chart 是一张时间线图表的实例，独占其绘图表面。
// 宽高在构造时确定，之后不随容器变化。Chart 不支持并发访问。
type Chart struct {
	cfg    Config
	width  float64
	height float64
	opts   Options
	log    *slog.Logger

	canvas   Canvas
	axis     *Group
	sections []*Group
	origins  []float64
}

// New 校验配置并创建图表。Config{} 按 DefaultConfig 处理，其他配置不做补齐。
func New(width, height float64, cfg Config, opts Options) (*Chart, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Sections = cloneSections(cfg.Sections)
	opts = opts.withDefaults()
	return &Chart{
		cfg:    cfg,
		width:  max(0, width),
		height: max(0, height),
		opts:   opts,
		log:    opts.Logger,
	}, nil
}

func cloneSections(in []Section) []Section {
	out := slices.Clone(in)
	for i := range out {
		out[i].Entries = slices.Clone(out[i].Entries)
	}
	return out
}

func (c *Chart) Config() Config { return c.cfg }
func (c *Chart) Width() float64 { return c.width }
func (c *Chart) Height() float64 { return c.height }
func (c *Chart) Canvas() Canvas { return c.canvas }
func (c *Chart) Axis() *Group { return c.axis }
func (c *Chart) Sections() []*Group { return slices.Clone(c.sections) }

// SectionOrigins 返回每个分区绘制时的起始 y。
func (c *Chart) SectionOrigins() []float64 { return slices.Clone(c.origins) }

// Scene 在绘图表面是 *Scene 时返回它。
func (c *Chart) Scene() (*Scene, bool) {
	s, ok := c.canvas.(*Scene)
	return s, ok
}

// axisX 是主轴与条目时间线共用的起点：标题列右侧再留出 Origin.X。
func (c *Chart) axisX() float64 {
	return c.cfg.Origin.X + c.cfg.TitleColumnWidth()
}

// CreateSurface 创建与图表同尺寸的新绘图表面，并清空之前的布局结果。
// 单独调用 Draw* 方法前必须先调用它。
func (c *Chart) CreateSurface() (Canvas, error) {
	surface := c.opts.NewCanvas(c.width, c.height)
	if surface == nil {
		return nil, errors.New("layout: 无法创建绘图表面")
	}
	c.canvas = surface
	c.axis = nil
	c.sections = nil
	c.origins = nil
	return surface, nil
}

// Draw 依次绘制带年份标注的主轴与全部分区，分区从主轴测得的下边缘开始。
func (c *Chart) Draw() error {
	if _, err := c.CreateSurface(); err != nil {
		return err
	}
	c.axis = c.DrawTimeline(c.axisX(), c.cfg.Origin.Y, TimelineOptions{Labels: true})
	sections := c.DrawSections(c.axis.BBox().Y2)
	c.log.Debug("图表绘制完成",
		"width", c.width,
		"height", c.height,
		"sections", len(c.sections),
		"bottom", sections.BBox().Y2,
	)
	return nil
}

// Container 是承载图表的宿主元素，保存其像素尺寸与已挂载的图表。
type Container struct {
	Width  float64
	Height float64

	chart *Chart
}

// NewContainer 创建给定尺寸的容器。
func NewContainer(width, height float64) *Container {
	return &Container{Width: width, Height: height}
}

// Chart 返回已挂载的图表，未挂载时为 nil。
func (ct *Container) Chart() *Chart { return ct.chart }

// AttachOptions 配置挂载行为。
type AttachOptions struct {
	Options
	// DeferDraw 为 true 时只创建图表，不立即绘制。
	DeferDraw bool
}

// Attach 在容器上创建并绘制图表。容器已有图表时直接返回原实例；
// 绘制失败时容器保持未挂载状态。
func Attach(ct *Container, cfg Config, opts AttachOptions) (*Chart, error) {
	if ct == nil {
		return nil, errors.New("layout: 容器为空")
	}
	if ct.chart != nil {
		return ct.chart, nil
	}
	chart, err := New(ct.Width, ct.Height, cfg, opts.Options)
	if err != nil {
		return nil, err
	}
	if !opts.DeferDraw {
		if err := chart.Draw(); err != nil {
			return nil, fmt.Errorf("绘制图表失败: %w", err)
		}
	}
	ct.chart = chart
	return chart, nil
}
