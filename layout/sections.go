package layout

const (
	sectionTitleFontSize = 14.0
	sectionFillOpacity   = 0.15
)

// DrawSections 自 y 开始依次绘制分区。每个分区的起点是上一个分区绘制后测得的下边缘。
func (c *Chart) DrawSections(y float64) *Group {
	all := NewGroup()
	c.sections = c.sections[:0]
	c.origins = c.origins[:0]
	for _, s := range c.cfg.Sections {
		g := c.DrawSection(0, y, s)
		c.origins = append(c.origins, y)
		c.sections = append(c.sections, g)
		all.Add(g)
		y = g.BBox().Y2
	}
	return all
}

// DrawSection 先绘制条目以测得内容高度，再绘制旋转的标题；标题过长时分区随之增高。
// 背景最后绘制，条目与标题随后置顶。
func (c *Chart) DrawSection(x, y float64, s Section) *Group {
	pad := c.cfg.TitleColumnWidth()
	entries := c.DrawEntries(c.axisX(), y+c.cfg.RowPitch()/2, s.Entries, EntryStyle{Color: s.Color})
	contentHeight := entries.BBox().Height + pad

	title := c.DrawSectionTitle(y, contentHeight, s)
	finalHeight := max(contentHeight, title.BBox().Height+pad)
	if d := finalHeight - contentHeight; d > 0 {
		title.Translate(0, d/2)
	}

	background := c.DrawBox(x, y, c.width, finalHeight, Fill(s.Color, sectionFillOpacity))
	column := c.DrawBox(x, y, pad, finalHeight, Fill(s.Color, 1))
	entries.ToFront()
	title.ToFront()

	c.log.Debug("分区布局完成", "label", s.Label, "y", y, "contentHeight", contentHeight, "height", finalHeight)
	return NewGroup(background, column, entries, title)
}

// DrawSectionTitle 在标题列中央绘制逆时针旋转 90° 的分区标题，纵向以 contentHeight 居中。
func (c *Chart) DrawSectionTitle(y, contentHeight float64, s Section) Primitive {
	white := ColorWhite
	return c.canvas.Text(c.cfg.TitleColumnWidth()/2, y+contentHeight/2, s.Label, Style{
		FillColor:  &white,
		FontSize:   sectionTitleFontSize,
		FontWeight: "bold",
		Anchor:     AnchorMiddle,
		Rotation:   -90,
	})
}

// DrawBox 绘制矩形。
func (c *Chart) DrawBox(x, y, w, h float64, st Style) Primitive {
	return c.canvas.Rect(x, y, w, h, st)
}
