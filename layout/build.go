package layout

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ByLCY/timeline/binding"
	"github.com/ByLCY/timeline/dsl"
)

// Build 把 DSL 文档转换为图表定义。未写出的字段保持默认值。
func Build(doc *dsl.Document) (Definition, error) {
	if doc == nil || doc.Body == nil {
		return Definition{}, fmt.Errorf("文档为空")
	}
	b := &docBuilder{
		def:    Definition{Config: DefaultConfig()},
		colors: map[string]Color{},
	}
	if err := b.root(doc.Body); err != nil {
		return Definition{}, err
	}
	return b.def, nil
}

type docBuilder struct {
	def    Definition
	colors map[string]Color
}

func (b *docBuilder) root(block *dsl.Block) error {
	cfg := &b.def.Config
	for _, st := range block.Statements {
		switch {
		case st.Assignment != nil:
			if err := b.rootAssignment(st.Assignment); err != nil {
				return err
			}
		case st.Command != nil:
			cmd := st.Command
			switch strings.ToLower(cmd.Name) {
			case "color":
				if err := b.colorResource(cmd); err != nil {
					return err
				}
			case "section":
				s, err := b.section(cmd, len(cfg.Sections))
				if err != nil {
					return err
				}
				cfg.Sections = append(cfg.Sections, s)
			default:
				return positioned(cmd.Pos, NewConfigurationError(cmd.Name, "", "未知命令", nil))
			}
		}
	}
	return nil
}

func (b *docBuilder) rootAssignment(a *dsl.Assignment) error {
	cfg := &b.def.Config
	parts := a.Value.Scalars()
	var err error
	switch strings.ToLower(a.Key) {
	case "range", "years":
		if len(parts) != 2 {
			return positioned(a.Pos, NewConfigurationError(a.Key, "", "需要 起始年 .. 结束年", nil))
		}
		if cfg.StartYear, err = scalarYear(a.Key, parts[0]); err != nil {
			return positioned(a.Pos, err)
		}
		cfg.EndYear, err = scalarYear(a.Key, parts[1])
	case "start", "startyear":
		cfg.StartYear, err = scalarYear(a.Key, first(parts))
	case "end", "endyear":
		cfg.EndYear, err = scalarYear(a.Key, first(parts))
	case "size":
		var v [2]float64
		if v, err = lengthPair(a.Key, parts); err == nil {
			b.def.Width, b.def.Height = v[0], v[1]
		}
	case "width":
		b.def.Width, err = scalarLength(a.Key, first(parts))
	case "height":
		b.def.Height, err = scalarLength(a.Key, first(parts))
	case "origin":
		var v [2]float64
		if v, err = lengthPair(a.Key, parts); err == nil {
			cfg.Origin = Point{X: v[0], Y: v[1]}
		}
	case "padding", "timelinepadding":
		cfg.TimelinePadding, err = lengthPair(a.Key, parts)
	default:
		err = NewConfigurationError(a.Key, "", "未知属性", nil)
	}
	if err != nil {
		return positioned(a.Pos, err)
	}
	return nil
}

// colorResource 解析 `color Name = #rrggbb`。
func (b *docBuilder) colorResource(cmd *dsl.Command) error {
	var name, value string
	for _, arg := range cmd.Args {
		switch {
		case arg.Is("Ident") && name == "":
			name = arg.Value
		case arg.Is("Color"):
			value = arg.Value
		}
	}
	if name == "" || value == "" {
		return positioned(cmd.Pos, NewConfigurationError("color", name, "需要 color 名称 = #rrggbb", nil))
	}
	c, err := ParseColor(value)
	if err != nil {
		return positioned(cmd.Pos, NewConfigurationError("color "+name, value, "颜色无法解析", err))
	}
	b.colors[name] = c
	return nil
}

// section 解析 `section "标签" <颜色> { entry ... }`。
func (b *docBuilder) section(cmd *dsl.Command, index int) (Section, error) {
	field := fmt.Sprintf("sections[%d]", index)
	s := Section{Color: ColorAxis}
	for _, arg := range cmd.Args {
		switch {
		case arg.Is("String") && s.Label == "":
			s.Label = arg.Value
		case arg.Is("Color"), arg.Is("Ident"):
			c, err := b.resolveColor(arg.Value)
			if err != nil {
				return s, positioned(arg.Pos, NewConfigurationError(field+".color", arg.Value, "颜色无法解析", err))
			}
			s.Color = c
		}
	}
	if cmd.Block == nil {
		return s, nil
	}
	for _, st := range cmd.Block.Statements {
		if a := st.Assignment; a != nil {
			switch strings.ToLower(a.Key) {
			case "label":
				s.Label = first(a.Value.Scalars()).Text()
			case "color":
				c, err := b.resolveColor(first(a.Value.Scalars()).Text())
				if err != nil {
					return s, positioned(a.Pos, NewConfigurationError(field+".color", "", "颜色无法解析", err))
				}
				s.Color = c
			default:
				return s, positioned(a.Pos, NewConfigurationError(field+"."+a.Key, "", "未知属性", nil))
			}
			continue
		}
		ec := st.Command
		if ec == nil {
			continue
		}
		if !strings.EqualFold(ec.Name, "entry") {
			return s, positioned(ec.Pos, NewConfigurationError(field+"."+ec.Name, "", "分区内只允许 entry", nil))
		}
		e, err := b.entry(ec, fmt.Sprintf("%s.entries[%d]", field, len(s.Entries)))
		if err != nil {
			return s, err
		}
		s.Entries = append(s.Entries, e)
	}
	return s, nil
}

// entry 解析 `entry <开始> [<结束>] { title: "..." organization: "..." }`。
func (b *docBuilder) entry(cmd *dsl.Command, field string) (Entry, error) {
	var e Entry
	var dates []*dsl.Lexeme
	for _, arg := range cmd.Args {
		if arg.Is("Date") || arg.Is("Number") || arg.Is("Ident") {
			dates = append(dates, arg)
		}
	}
	if len(dates) > 2 {
		return e, positioned(cmd.Pos, NewConfigurationError(field, len(dates), "最多两个日期", nil))
	}
	targets := []*time.Time{&e.Start, &e.End}
	names := []string{"start", "end"}
	for i, d := range dates {
		t, err := ParseDate(d.Value)
		if err != nil {
			return e, positioned(d.Pos, NewConfigurationError(field+"."+names[i], d.Value, "日期无法解析", err))
		}
		*targets[i] = t
	}
	if cmd.Block == nil {
		return e, nil
	}
	for _, st := range cmd.Block.Statements {
		a := st.Assignment
		if a == nil {
			continue
		}
		text := first(a.Value.Scalars()).Text()
		switch strings.ToLower(a.Key) {
		case "title":
			e.Title = text
		case "organization", "organisation", "org":
			e.Organization = text
		case "start", "end":
			t, err := ParseDate(text)
			if err != nil {
				return e, positioned(a.Pos, NewConfigurationError(field+"."+a.Key, text, "日期无法解析", err))
			}
			if strings.EqualFold(a.Key, "start") {
				e.Start = t
			} else {
				e.End = t
			}
		default:
			return e, positioned(a.Pos, NewConfigurationError(field+"."+a.Key, text, "未知属性", nil))
		}
	}
	return e, nil
}

func (b *docBuilder) resolveColor(value string) (Color, error) {
	if c, ok := b.colors[value]; ok {
		return c, nil
	}
	return ParseColor(value)
}

func first(parts []*dsl.Scalar) *dsl.Scalar {
	if len(parts) == 0 {
		return nil
	}
	return parts[0]
}

func scalarYear(field string, s *dsl.Scalar) (int, error) {
	text := s.Text()
	year, err := strconv.Atoi(text)
	if err != nil {
		return 0, NewConfigurationError(field, text, "年份必须是整数", err)
	}
	return year, nil
}

func scalarLength(field string, s *dsl.Scalar) (float64, error) {
	text := s.Text()
	l, err := ParseLength(text)
	if err != nil {
		return 0, NewConfigurationError(field, text, "长度无法解析", err)
	}
	return l.PX(), nil
}

func lengthPair(field string, parts []*dsl.Scalar) ([2]float64, error) {
	var out [2]float64
	if len(parts) != 2 {
		return out, NewConfigurationError(field, len(parts), "需要两个数值", nil)
	}
	for i, p := range parts {
		v, err := scalarLength(fmt.Sprintf("%s[%d]", field, i), p)
		if err != nil {
			return out, err
		}
		out[i] = v
	}
	return out, nil
}

// positioned 在错误前加上 DSL 中的行列号。
func positioned(pos interface{ String() string }, err error) error {
	return fmt.Errorf("%s: %w", pos.String(), err)
}

// Interpolate 返回一份副本，把分区标签、条目标题与机构中的 ${path} 替换为 data 中的值。
func (c Config) Interpolate(data any) Config {
	if data == nil {
		return c
	}
	c.Sections = cloneSections(c.Sections)
	for i := range c.Sections {
		s := &c.Sections[i]
		s.Label = binding.Interpolate(s.Label, data)
		for j := range s.Entries {
			e := &s.Entries[j]
			e.Title = binding.Interpolate(e.Title, data)
			e.Organization = binding.Interpolate(e.Organization, data)
		}
	}
	return c
}
