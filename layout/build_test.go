package layout

import (
	"errors"
	"strings"
	"testing"

	"github.com/ByLCY/timeline/dsl"
)

const resumeDSL = `
timeline "Resume" {
  range: 2000 .. 2015
  size: [800, 400]
  origin: [30, 30]
  padding: [40, 40]

  color Work = #3366cc

  section "Work" Work {
    entry 2010-02-07 present {
      title: "Engineer ${user.level}"
      organization: "Acme"
    }
    entry 2005 2009-06 {
      title: "Intern"
    }
  }

  // 第二个分区直接使用颜色值
  section "Education" #cc6633 {
    entry 2001-09 2005-06 {
      title: "BSc"
      org: "University"
    }
  }
}
`

func buildDSL(t *testing.T, src string) (Definition, error) {
	t.Helper()
	doc, err := dsl.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("解析 DSL 失败: %v", err)
	}
	return Build(doc)
}

func TestBuildFromDSL(t *testing.T) {
	def, err := buildDSL(t, resumeDSL)
	if err != nil {
		t.Fatalf("构建图表定义失败: %v", err)
	}
	if def.Width != 800 || def.Height != 400 {
		t.Fatalf("尺寸不符 %gx%g", def.Width, def.Height)
	}
	cfg := def.Config
	if cfg.StartYear != 2000 || cfg.EndYear != 2015 {
		t.Fatalf("年份区间不符 %d..%d", cfg.StartYear, cfg.EndYear)
	}
	if len(cfg.Sections) != 2 {
		t.Fatalf("应有 2 个分区，实际 %d", len(cfg.Sections))
	}
	work := cfg.Sections[0]
	if work.Label != "Work" || work.Color != (Color{R: 0x33, G: 0x66, B: 0xcc}) {
		t.Fatalf("Work 分区不符 %+v", work)
	}
	if len(work.Entries) != 2 {
		t.Fatalf("Work 分区应有 2 个条目，实际 %d", len(work.Entries))
	}
	first := work.Entries[0]
	if !first.Start.Equal(date(2010, 2, 7)) || !first.End.IsZero() {
		t.Fatalf("第一个条目的日期不符 %v..%v", first.Start, first.End)
	}
	if first.Title != "Engineer ${user.level}" || first.Organization != "Acme" {
		t.Fatalf("第一个条目的文本不符 %+v", first)
	}
	if !work.Entries[1].End.Equal(date(2009, 6, 1)) {
		t.Fatalf("YYYY-MM 形式的结束日期应为当月 1 日，实际 %v", work.Entries[1].End)
	}
	edu := cfg.Sections[1]
	if edu.Color != (Color{R: 0xcc, G: 0x66, B: 0x33}) || edu.Entries[0].Organization != "University" {
		t.Fatalf("Education 分区不符 %+v", edu)
	}

	if _, err := New(def.Width, def.Height, cfg, Options{}); err != nil {
		t.Fatalf("构建出的配置应有效: %v", err)
	}
}

func TestBuildLengthUnits(t *testing.T) {
	def, err := buildDSL(t, `timeline { width: 1in  height: 300px  padding: [30pt, 50] }`)
	if err != nil {
		t.Fatalf("构建图表定义失败: %v", err)
	}
	if def.Width != 96 || def.Height != 300 {
		t.Fatalf("尺寸不符 %gx%g", def.Width, def.Height)
	}
	if !approx(def.Config.TimelinePadding[0], 40) || def.Config.TimelinePadding[1] != 50 {
		t.Fatalf("间距不符 %v", def.Config.TimelinePadding)
	}
	if def.Config.StartYear != DefaultStartYear {
		t.Fatalf("未写出的字段应保持默认值")
	}
}

func TestBuildKeepsExplicitZeroOrigin(t *testing.T) {
	def, err := buildDSL(t, `timeline { origin: [0, 0] }`)
	if err != nil {
		t.Fatalf("构建图表定义失败: %v", err)
	}
	c, err := New(800, 400, def.Config, Options{})
	if err != nil {
		t.Fatalf("创建图表失败: %v", err)
	}
	if c.Config().Origin != (Point{}) {
		t.Fatalf("显式写出的 origin: [0, 0] 应保留，实际 %+v", c.Config().Origin)
	}
	if c.Config().TimelinePadding != [2]float64{DefaultTitleColumnWidth, DefaultRowPitch} {
		t.Fatalf("未写出的 padding 应保持默认值，实际 %v", c.Config().TimelinePadding)
	}
}

func TestBuildErrors(t *testing.T) {
	cases := map[string]string{
		"unknown attribute": `timeline { colour: 1 }`,
		"unknown command":   `timeline { chart "x" }`,
		"bad year":          `timeline { range: abc .. 2010 }`,
		"bad color":         `timeline { section "A" Missing { } }`,
		"bad date":          `timeline { section "A" { entry 2010-13-45 { } } }`,
		"entry attribute":   `timeline { section "A" { entry 2010 { role: "x" } } }`,
		"too many dates":    `timeline { section "A" { entry 2001 2002 2003 } }`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := buildDSL(t, src)
			if err == nil {
				t.Fatalf("应返回错误")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("错误应匹配 ErrInvalidConfig: %v", err)
			}
			if !strings.Contains(err.Error(), ":") {
				t.Fatalf("错误应带有位置信息: %v", err)
			}
		})
	}
}

func TestBuildNilDocument(t *testing.T) {
	if _, err := Build(nil); err == nil {
		t.Fatalf("nil 文档应失败")
	}
}

func TestConfigInterpolate(t *testing.T) {
	def, err := buildDSL(t, resumeDSL)
	if err != nil {
		t.Fatalf("构建图表定义失败: %v", err)
	}
	data := map[string]any{"user": map[string]any{"level": "II"}}
	cfg := def.Config.Interpolate(data)
	if got := cfg.Sections[0].Entries[0].Title; got != "Engineer II" {
		t.Fatalf("替换后的标题 = %q", got)
	}
	if def.Config.Sections[0].Entries[0].Title != "Engineer ${user.level}" {
		t.Fatalf("Interpolate 不应修改接收者")
	}
	if same := def.Config.Interpolate(nil); same.Sections[0].Entries[0].Title != "Engineer ${user.level}" {
		t.Fatalf("数据为 nil 时文本应保持不变")
	}
}
