package layout

import (
	"math"
	"slices"
)

// ShapeKind 区分 Scene 中保存的图元类型。
type ShapeKind string

const (
	ShapeLine   ShapeKind = "line"
	ShapeRect   ShapeKind = "rect"
	ShapeCircle ShapeKind = "circle"
	ShapeText   ShapeKind = "text"
)

const defaultFontSize = 12.0

// Shape 是 Scene 中的一个图元。坐标均为 px，DX/DY 是绘制后施加的平移。
type Shape struct {
	Kind ShapeKind `json:"kind"`
	// X/Y：直线起点、矩形左上角、圆心或文本锚点。
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	X2 float64 `json:"x2,omitempty"`
	Y2 float64 `json:"y2,omitempty"`
	// Width/Height：矩形尺寸，或文本测量得到的尺寸（未旋转）。
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	R      float64 `json:"r,omitempty"`
	Text   string  `json:"text,omitempty"`
	Attrs  Style   `json:"style"`
	DX     float64 `json:"dx,omitempty"`
	DY     float64 `json:"dy,omitempty"`

	scene *Scene
}

var _ Primitive = (*Shape)(nil)

// Scene 是保留模式的绘图表面：按绘制顺序记录所有图元，并提供测量结果。
// 它既是布局测试使用的记录画布，也是渲染器的输入。
// Scene 不支持并发访问。
type Scene struct {
	width    float64
	height   float64
	measurer TextMeasurer
	shapes   []*Shape
}

var _ Canvas = (*Scene)(nil)

// NewScene 创建给定尺寸的空 Scene；measurer 为空时使用 MonospaceMeasurer。
func NewScene(width, height float64, measurer TextMeasurer) *Scene {
	if measurer == nil {
		measurer = MonospaceMeasurer{}
	}
	return &Scene{width: width, height: height, measurer: measurer}
}

func (s *Scene) Width() float64 { return s.width }
func (s *Scene) Height() float64 { return s.height }

// Shapes 按绘制顺序（从底到顶）返回图元。
func (s *Scene) Shapes() []*Shape { return slices.Clone(s.shapes) }

// Count 返回某类图元的数量。
func (s *Scene) Count(kind ShapeKind) int {
	n := 0
	for _, sh := range s.shapes {
		if sh.Kind == kind {
			n++
		}
	}
	return n
}

// Bounds 返回所有图元包围盒的并集。
func (s *Scene) Bounds() BBox {
	g := &Group{}
	for _, sh := range s.shapes {
		g.Add(sh)
	}
	return g.BBox()
}

func (s *Scene) Line(x1, y1, x2, y2 float64, st Style) Primitive {
	return s.add(&Shape{Kind: ShapeLine, X: x1, Y: y1, X2: x2, Y2: y2, Attrs: st})
}

func (s *Scene) Rect(x, y, w, h float64, st Style) Primitive {
	return s.add(&Shape{Kind: ShapeRect, X: x, Y: y, Width: w, Height: h, Attrs: st})
}

func (s *Scene) Circle(cx, cy, r float64, st Style) Primitive {
	return s.add(&Shape{Kind: ShapeCircle, X: cx, Y: cy, R: r, Attrs: st})
}

func (s *Scene) Text(x, y float64, text string, st Style) Primitive {
	if st.FontSize <= 0 {
		st.FontSize = defaultFontSize
	}
	if st.Anchor == "" {
		st.Anchor = AnchorMiddle
	}
	sh := &Shape{Kind: ShapeText, X: x, Y: y, Text: text, Attrs: st}
	sh.Width, sh.Height = s.measurer.MeasureText(text, st.Font())
	return s.add(sh)
}

func (s *Scene) add(sh *Shape) *Shape {
	sh.scene = s
	s.shapes = append(s.shapes, sh)
	return sh
}

func (s *Scene) raise(sh *Shape) {
	i := slices.Index(s.shapes, sh)
	if i < 0 || i == len(s.shapes)-1 {
		return
	}
	s.shapes = append(slices.Delete(s.shapes, i, i+1), sh)
}

// Style 返回图元当前样式。
func (sh *Shape) Style() Style { return sh.Attrs }

// SetStyle 替换样式；文本的字体变化时会重新测量。
func (sh *Shape) SetStyle(st Style) {
	fontChanged := st.Font() != sh.Attrs.Font()
	sh.Attrs = st
	if sh.Kind == ShapeText && fontChanged && sh.scene != nil {
		sh.Width, sh.Height = sh.scene.measurer.MeasureText(sh.Text, st.Font())
	}
}

// Translate 累加平移量。
func (sh *Shape) Translate(dx, dy float64) {
	sh.DX += dx
	sh.DY += dy
}

// ToFront 把图元移到 Scene 绘制顺序的最后。
func (sh *Shape) ToFront() {
	if sh.scene != nil {
		sh.scene.raise(sh)
	}
}

// BBox 返回几何包围盒（不含描边宽度），已包含平移。
func (sh *Shape) BBox() BBox {
	var b BBox
	switch sh.Kind {
	case ShapeLine:
		x, y := min(sh.X, sh.X2), min(sh.Y, sh.Y2)
		b = NewBBox(x, y, math.Abs(sh.X2-sh.X), math.Abs(sh.Y2-sh.Y))
	case ShapeRect:
		b = NewBBox(sh.X, sh.Y, sh.Width, sh.Height)
	case ShapeCircle:
		b = NewBBox(sh.X-sh.R, sh.Y-sh.R, 2*sh.R, 2*sh.R)
	case ShapeText:
		b = sh.textBBox()
	}
	return b.Translate(sh.DX, sh.DY)
}

// TextOrigin 返回文本未旋转时左上角相对锚点的偏移。
func (sh *Shape) TextOrigin() (dx, dy float64) {
	switch sh.Attrs.Anchor {
	case AnchorStart:
		dx = 0
	case AnchorEnd:
		dx = -sh.Width
	default:
		dx = -sh.Width / 2
	}
	return dx, -sh.Height / 2
}

func (sh *Shape) textBBox() BBox {
	left, top := sh.TextOrigin()
	if sh.Attrs.Rotation == 0 {
		return NewBBox(sh.X+left, sh.Y+top, sh.Width, sh.Height)
	}
	sin, cos := sinCos(sh.Attrs.Rotation)
	corners := [4][2]float64{
		{left, top}, {left + sh.Width, top},
		{left, top + sh.Height}, {left + sh.Width, top + sh.Height},
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		rx := c[0]*cos - c[1]*sin
		ry := c[0]*sin + c[1]*cos
		minX, maxX = min(minX, rx), max(maxX, rx)
		minY, maxY = min(minY, ry), max(maxY, ry)
	}
	return NewBBox(sh.X+minX, sh.Y+minY, maxX-minX, maxY-minY)
}

// sinCos 对 90° 的整数倍返回精确值，避免包围盒出现浮点噪声。
func sinCos(deg float64) (float64, float64) {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return snapUnit(sin), snapUnit(cos)
}

func snapUnit(v float64) float64 {
	const eps = 1e-12
	switch {
	case math.Abs(v) < eps:
		return 0
	case math.Abs(v-1) < eps:
		return 1
	case math.Abs(v+1) < eps:
		return -1
	}
	return v
}
