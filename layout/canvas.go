package layout

// Canvas 是布局引擎使用的绘图表面。每个绘图方法立即返回可测量的图元，
// 后续布局可以读取已绘制内容的包围盒来决定下一步的位置。
type Canvas interface {
	Width() float64
	Height() float64
	Line(x1, y1, x2, y2 float64, st Style) Primitive
	Rect(x, y, w, h float64, st Style) Primitive
	Circle(cx, cy, r float64, st Style) Primitive
	// Text 以 (x, y) 为锚点绘制单行文本，y 是文本的垂直中线。
	Text(x, y float64, text string, st Style) Primitive
}

// Element 是可测量、可移动的绘制结果。
type Element interface {
	BBox() BBox
	Translate(dx, dy float64)
	// ToFront 把元素移到绘制顺序的最后，使其覆盖之前绘制的内容。
	ToFront()
}

// Primitive 是单个图元，可以读取与修改样式。
type Primitive interface {
	Element
	Style() Style
	SetStyle(st Style)
}

// Group 组合多个元素，包围盒为成员包围盒的并集。空 Group 的包围盒为零值。
type Group struct {
	items []Element
}

var _ Element = (*Group)(nil)

// NewGroup 创建包含 items 的 Group。
func NewGroup(items ...Element) *Group {
	g := &Group{}
	g.Add(items...)
	return g
}

// Add 追加成员，忽略 nil。
func (g *Group) Add(items ...Element) {
	for _, it := range items {
		if it != nil {
			g.items = append(g.items, it)
		}
	}
}

// Items 返回直接成员。
func (g *Group) Items() []Element { return g.items }

// Len 返回直接成员数量。
func (g *Group) Len() int { return len(g.items) }

// BBox 返回所有成员包围盒的并集。
func (g *Group) BBox() BBox {
	if g == nil || len(g.items) == 0 {
		return BBox{}
	}
	var box BBox
	set := false
	for _, it := range g.items {
		if sub, ok := it.(*Group); ok && sub.Len() == 0 {
			continue
		}
		b := it.BBox()
		if !set {
			box, set = b, true
			continue
		}
		box = box.Union(b)
	}
	return box
}

// Translate 平移所有成员。
func (g *Group) Translate(dx, dy float64) {
	for _, it := range g.items {
		it.Translate(dx, dy)
	}
}

// ToFront 按成员顺序依次置顶，保持成员之间的相对层次。
func (g *Group) ToFront() {
	for _, it := range g.items {
		it.ToFront()
	}
}

// Primitives 递归展开所有图元。
func (g *Group) Primitives() []Primitive {
	var out []Primitive
	for _, it := range g.items {
		switch v := it.(type) {
		case *Group:
			out = append(out, v.Primitives()...)
		case Primitive:
			out = append(out, v)
		}
	}
	return out
}
