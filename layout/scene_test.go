package layout

import "testing"

func TestEmptyGroupHasZeroBBox(t *testing.T) {
	var nilGroup *Group
	if nilGroup.BBox() != (BBox{}) {
		t.Fatalf("nil 组的包围盒应为零")
	}
	if NewGroup().BBox() != (BBox{}) {
		t.Fatalf("空组的包围盒应为零")
	}
	s := NewScene(100, 100, nil)
	r := s.Rect(10, 20, 30, 40, Style{})
	g := NewGroup(NewGroup(), r, nil)
	if g.Len() != 2 {
		t.Fatalf("应跳过 nil 成员，实际 %d", g.Len())
	}
	if got, want := g.BBox(), NewBBox(10, 20, 30, 40); got != want {
		t.Fatalf("空子组不应扩大并集: 实际 %+v 期望 %+v", got, want)
	}
}

func TestGroupUnionAndTranslate(t *testing.T) {
	s := NewScene(200, 200, nil)
	a := s.Rect(0, 0, 10, 10, Style{})
	b := s.Circle(50, 50, 5, Style{})
	g := NewGroup(a, b)
	if got, want := g.BBox(), NewBBox(0, 0, 55, 55); got != want {
		t.Fatalf("并集 = %+v，期望 %+v", got, want)
	}
	g.Translate(5, -5)
	if got, want := g.BBox(), NewBBox(5, -5, 55, 55); got != want {
		t.Fatalf("平移后的并集 = %+v，期望 %+v", got, want)
	}
	if len(g.Primitives()) != 2 {
		t.Fatalf("应有 2 个图元")
	}
}

func TestTextBBoxAnchors(t *testing.T) {
	s := NewScene(200, 200, MonospaceMeasurer{Advance: 0.5, LineHeight: 1})
	cases := []struct {
		anchor Anchor
		x      float64
	}{
		{AnchorStart, 100},
		{AnchorMiddle, 90},
		{AnchorEnd, 80},
	}
	for _, tc := range cases {
		p := s.Text(100, 50, "abcd", Style{FontSize: 10, Anchor: tc.anchor})
		box := p.BBox()
		if box.Width != 20 || box.Height != 10 {
			t.Fatalf("%s: 尺寸 %gx%g，期望 20x10", tc.anchor, box.Width, box.Height)
		}
		if box.X != tc.x || box.Y != 45 {
			t.Fatalf("%s: 左上角 (%g,%g)，期望 (%g,45)", tc.anchor, box.X, box.Y, tc.x)
		}
	}
}

func TestRotatedTextBBox(t *testing.T) {
	s := NewScene(200, 200, MonospaceMeasurer{Advance: 0.5, LineHeight: 1})
	p := s.Text(20, 100, "abcdefgh", Style{FontSize: 10, Rotation: -90})
	// 40x10 的文本绕中心旋转后变为 10x40
	if got, want := p.BBox(), NewBBox(15, 80, 10, 40); got != want {
		t.Fatalf("旋转后的包围盒 = %+v，期望 %+v", got, want)
	}
}

func TestSetStyleRemeasuresText(t *testing.T) {
	s := NewScene(200, 200, nil)
	p := s.Text(0, 0, "Title", Style{FontSize: 12})
	before := p.BBox().Width
	st := p.Style()
	st.FontWeight = "bold"
	p.SetStyle(st)
	if after := p.BBox().Width; after <= before {
		t.Fatalf("粗体文本应更宽: %g <= %g", after, before)
	}
	st.Anchor = AnchorEnd
	p.SetStyle(st)
	if box := p.BBox(); box.X2 != 0 {
		t.Fatalf("end 锚点的文本应止于锚点，实际 X2=%g", box.X2)
	}
}

func TestToFrontMovesShapeLast(t *testing.T) {
	s := NewScene(100, 100, nil)
	a := s.Rect(0, 0, 1, 1, Style{})
	s.Rect(1, 1, 1, 1, Style{})
	s.Rect(2, 2, 1, 1, Style{})
	a.ToFront()
	shapes := s.Shapes()
	if shapes[len(shapes)-1] != a.(*Shape) || len(shapes) != 3 {
		t.Fatalf("ToFront 应把图元移到绘制顺序末尾")
	}
	if s.Bounds() != NewBBox(0, 0, 3, 3) {
		t.Fatalf("场景边界不符 %+v", s.Bounds())
	}
}

func TestMonospaceMeasurer(t *testing.T) {
	m := MonospaceMeasurer{}
	w, h := m.MeasureText("abc", Font{Size: 10})
	if !approx(w, 18) || !approx(h, 12) {
		t.Fatalf("实际 %gx%g，期望 18x12", w, h)
	}
	bw, _ := m.MeasureText("abc", Font{Size: 10, Weight: "700"})
	if bw <= w {
		t.Fatalf("粗体应更宽")
	}
	if w, _ := m.MeasureText("", Font{}); w != 0 {
		t.Fatalf("空文本宽度应为 0")
	}
}
