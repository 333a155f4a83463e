package main

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ByLCY/timeline/layout"
)

const chartDSL = `timeline "Resume" {
  range: 2000 .. 2010
  size: [640, 320]
  section "Work" #3366cc {
    entry 2004 present {
      title: "Engineer ${user.level}"
      organization: "Acme"
    }
  }
}
`

const chartYAML = `start_year: 2000
end_year: 2010
sections:
  - label: Work
    color: "#3366cc"
    entries:
      - start: "2004"
        title: Engineer
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("写入 %s 失败: %v", name, err)
	}
	return path
}

func TestLoadDefinitionByExtension(t *testing.T) {
	dir := t.TempDir()
	def, err := loadDefinition(writeFile(t, dir, "resume.timeline", chartDSL))
	if err != nil {
		t.Fatalf("加载 DSL 失败: %v", err)
	}
	if def.Width != 640 || def.Config.EndYear != 2010 {
		t.Fatalf("DSL 定义不符 %+v", def)
	}
	def, err = loadDefinition(writeFile(t, dir, "resume.yml", chartYAML))
	if err != nil {
		t.Fatalf("加载 YAML 失败: %v", err)
	}
	if len(def.Config.Sections) != 1 || def.Config.Sections[0].Entries[0].Title != "Engineer" {
		t.Fatalf("YAML 定义不符 %+v", def)
	}
	if _, err := loadDefinition(writeFile(t, dir, "broken.timeline", "timeline {")); err == nil {
		t.Fatalf("语法错误的 DSL 应失败")
	}
}

func TestResolveSize(t *testing.T) {
	def := layout.Definition{Width: 640, Height: 320}
	if w, h := resolveSize(def, cliOptions{}); w != 640 || h != 320 {
		t.Fatalf("应使用文件中的尺寸，实际 %gx%g", w, h)
	}
	if w, h := resolveSize(def, cliOptions{width: 1000}); w != 1000 || h != 320 {
		t.Fatalf("命令行参数应覆盖宽度，实际 %gx%g", w, h)
	}
	if w, h := resolveSize(layout.Definition{}, cliOptions{}); w != defaultWidth || h != defaultHeight {
		t.Fatalf("应使用默认尺寸，实际 %gx%g", w, h)
	}
}

func TestRunWritesOutputAndDebug(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "resume.timeline", chartDSL)
	out := filepath.Join(dir, "out", "resume.svg")
	debug := filepath.Join(dir, "debug", "layout.json")
	log := slog.New(slog.DiscardHandler)

	err := run(input, cliOptions{output: out, debug: debug, data: `{"user": {"level": "II"}}`}, log)
	if err != nil {
		t.Fatalf("运行失败: %v", err)
	}
	svg, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("缺少输出文件: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Fatalf("输出应为 SVG")
	}

	data, err := os.ReadFile(debug)
	if err != nil {
		t.Fatalf("缺少调试 JSON: %v", err)
	}
	var dump layout.DebugDump
	if err := json.Unmarshal(data, &dump); err != nil {
		t.Fatalf("调试 JSON 无效: %v", err)
	}
	if dump.Width != 640 || dump.Height != 320 {
		t.Fatalf("图表应使用文件中的尺寸，实际 %gx%g", dump.Width, dump.Height)
	}
	found := false
	for _, sh := range dump.Shapes {
		if sh.Text == "Engineer II" {
			found = true
		}
	}
	if !found {
		t.Fatalf("标题应按 --data 替换占位符")
	}
}

func TestRunDefaultOutputAndErrors(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "resume.yaml", chartYAML)
	log := slog.New(slog.DiscardHandler)
	if err := run(input, cliOptions{}, log); err != nil {
		t.Fatalf("运行失败: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "resume.pdf")); err != nil {
		t.Fatalf("默认输出应为 <input>.pdf: %v", err)
	}

	if err := run(input, cliOptions{output: filepath.Join(dir, "x.gif")}, log); err == nil {
		t.Fatalf("不支持的输出格式应失败")
	}
	if err := run(input, cliOptions{data: "{"}, log); err == nil {
		t.Fatalf("无效的 --data JSON 应失败")
	}
	if err := run(filepath.Join(dir, "missing.timeline"), cliOptions{}, log); err == nil {
		t.Fatalf("输入文件不存在时应失败")
	}
}
