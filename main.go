package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ByLCY/timeline/config"
	"github.com/ByLCY/timeline/dsl"
	"github.com/ByLCY/timeline/layout"
	"github.com/ByLCY/timeline/renderer"
	canvasrenderer "github.com/ByLCY/timeline/renderer/canvas"
)

const (
	defaultWidth  = 800.0
	defaultHeight = 400.0
)

type cliOptions struct {
	output      string
	width       float64
	height      float64
	data        string
	debug       string
	fontRegular string
	fontBold    string
	scale       float64
	verbose     bool
}

func main() {
	var opts cliOptions
	rootCmd := &cobra.Command{
		Use:   "timeline <chart-file>",
		Short: "把时间线图表文件渲染为 PDF、SVG 或 PNG",
		Long: `timeline 读取 .timeline（DSL）或 .yaml 图表文件，计算主轴、条目与分区布局，
并按输出文件扩展名渲染为 PDF、SVG 或 PNG。`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], opts, newLogger(opts.verbose))
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", "", "输出路径，扩展名决定格式 (默认: <输入文件名>.pdf)")
	flags.Float64Var(&opts.width, "width", 0, "容器宽度 px，覆盖图表文件中的值")
	flags.Float64Var(&opts.height, "height", 0, "容器高度 px，覆盖图表文件中的值")
	flags.StringVar(&opts.data, "data", "", "绑定到 ${...} 占位符的 JSON 数据")
	flags.StringVar(&opts.debug, "debug", "", "布局调试 JSON 输出路径")
	flags.StringVar(&opts.fontRegular, "font-regular", "", "常规字体 TTF 路径 (默认内置 Go Regular)")
	flags.StringVar(&opts.fontBold, "font-bold", "", "粗体字体 TTF 路径 (默认内置 Go Bold)")
	flags.Float64Var(&opts.scale, "scale", 1, "PNG 输出的像素倍率")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "输出调试日志")

	if err := rootCmd.Execute(); err != nil {
		slog.Error("生成图表失败", "error", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// run 串联解析、布局与渲染。
func run(inputPath string, opts cliOptions, log *slog.Logger) error {
	def, err := loadDefinition(inputPath)
	if err != nil {
		return err
	}
	if opts.data != "" {
		var data any
		if err := json.Unmarshal([]byte(opts.data), &data); err != nil {
			return fmt.Errorf("解析 data JSON 失败: %w", err)
		}
		def.Config = def.Config.Interpolate(data)
	}
	width, height := resolveSize(def, opts)

	outputPath := opts.output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".pdf"
	}
	format, err := renderer.FormatFromPath(outputPath)
	if err != nil {
		return err
	}

	r, err := canvasrenderer.NewRenderer(canvasrenderer.Options{
		Regular: canvasrenderer.Resource{Path: opts.fontRegular},
		Bold:    canvasrenderer.Resource{Path: opts.fontBold},
		Scale:   opts.scale,
		Logger:  log,
	})
	if err != nil {
		return fmt.Errorf("初始化渲染器失败: %w", err)
	}

	ct := layout.NewContainer(width, height)
	chart, err := layout.Attach(ct, def.Config, layout.AttachOptions{
		Options: layout.Options{Measurer: r, Logger: log},
	})
	if err != nil {
		return fmt.Errorf("布局计算失败: %w", err)
	}

	if opts.debug != "" {
		if err := writeDebug(chart, opts.debug); err != nil {
			return err
		}
	}

	scene, ok := chart.Scene()
	if !ok {
		return fmt.Errorf("绘图表面不是 Scene，无法渲染")
	}
	out, err := r.Render(scene, format)
	if err != nil {
		return fmt.Errorf("渲染 %s 失败: %w", format, err)
	}
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return fmt.Errorf("写入输出文件失败: %w", err)
	}
	log.Info("已生成图表", "output", outputPath, "format", format, "width", width, "height", height)
	return nil
}

// loadDefinition 按扩展名选择前端：.yaml/.yml 使用 YAML，其它按 DSL 解析。
func loadDefinition(path string) (layout.Definition, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return config.Load(path)
	}
	file, err := os.Open(path)
	if err != nil {
		return layout.Definition{}, fmt.Errorf("无法打开图表文件 %s: %w", path, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return layout.Definition{}, fmt.Errorf("解析 DSL 失败: %w", err)
	}
	def, err := layout.Build(doc)
	if err != nil {
		return layout.Definition{}, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// resolveSize 依次取命令行参数、图表文件与默认值。
func resolveSize(def layout.Definition, opts cliOptions) (float64, float64) {
	width, height := def.Width, def.Height
	if opts.width > 0 {
		width = opts.width
	}
	if opts.height > 0 {
		height = opts.height
	}
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return width, height
}

func writeDebug(chart *layout.Chart, debugPath string) error {
	if dir := filepath.Dir(debugPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建调试目录失败: %w", err)
		}
	}
	if err := layout.WriteDebugJSON(chart, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
