package layout

const (
	entryFontSize    = 12.0
	entryTextPadding = 10.0
	entryLineGap     = 4.0
)

// EntryStyle 是同一分区内条目共用的样式。
type EntryStyle struct {
	Color Color
}

// DrawEntries 以固定行距 RowPitch 自上而下绘制条目；行位置不依赖上一行的测量高度。
func (c *Chart) DrawEntries(x, y float64, entries []Entry, st EntryStyle) *Group {
	g := NewGroup()
	for i, e := range entries {
		g.Add(c.DrawEntry(x, y+float64(i)*c.cfg.RowPitch(), e, st))
	}
	return g
}

// DrawEntry 绘制条目的迷你时间线，并在线段右侧写出标题与机构。
func (c *Chart) DrawEntry(x, y float64, e Entry, st EntryStyle) *Group {
	r := e.resolve(c.cfg.Range())
	col := st.Color
	timeline := c.DrawTimeline(x, y, TimelineOptions{Range: &r, Color: &col})
	box := timeline.BBox()
	text := c.DrawEntryText(box.X2+entryTextPadding, y, c.width, box.Width, e)
	return NewGroup(timeline, text)
}

// DrawEntryText 在 (x, y) 左对齐写出粗体标题与常规机构名，机构名位于标题下方。
// 若文本右边缘超出 maxWidth，则改为右对齐并整体左移 segmentWidth + 2*padding，
// 使文本落到线段左侧。只修正一次，左移后仍可能越界。
func (c *Chart) DrawEntryText(x, y, maxWidth, segmentWidth float64, e Entry) *Group {
	offset := 0.0
	if e.Title != "" && e.Organization != "" {
		offset = (entryFontSize + entryLineGap) / 2
	}
	col := ColorText
	var texts []Primitive
	if e.Title != "" {
		texts = append(texts, c.canvas.Text(x, y-offset, e.Title, Style{
			FillColor:  &col,
			FontSize:   entryFontSize,
			FontWeight: "bold",
			Anchor:     AnchorStart,
		}))
	}
	if e.Organization != "" {
		texts = append(texts, c.canvas.Text(x, y+offset, e.Organization, Style{
			FillColor: &col,
			FontSize:  entryFontSize,
			Anchor:    AnchorStart,
		}))
	}

	g := NewGroup()
	for _, t := range texts {
		g.Add(t)
	}
	if g.Len() == 0 || g.BBox().X2 <= maxWidth {
		return g
	}

	for _, t := range texts {
		st := t.Style()
		st.Anchor = AnchorEnd
		t.SetStyle(st)
	}
	shift := segmentWidth + 2*entryTextPadding
	g.Translate(-shift, 0)
	if box := g.BBox(); box.X < 0 {
		c.log.Debug("条目文本左移后仍越界", "title", e.Title, "x", box.X)
	} else {
		c.log.Debug("条目文本移到线段左侧", "title", e.Title, "shift", shift)
	}
	return g
}
