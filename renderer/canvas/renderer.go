package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"log/slog"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/ByLCY/timeline/fonts"
	"github.com/ByLCY/timeline/layout"
	"github.com/ByLCY/timeline/renderer"
)

// Renderer draws layout scenes via github.com/tdewolff/canvas.
// Scene coordinates are CSS pixels; the canvas works in millimeters and
// font sizes in points, so every value is converted at the boundary.
type Renderer struct {
	family *canvas.FontFamily
	scale  float64
	log    *slog.Logger

	faceMu sync.Mutex
	faces  map[faceKey]*canvas.FontFace
}

var (
	_ renderer.Renderer   = (*Renderer)(nil)
	_ layout.TextMeasurer = (*Renderer)(nil)
)

type faceKey struct {
	sizePt float64
	bold   bool
	color  color.RGBA
}

// Options configures the canvas renderer.
type Options struct {
	Regular Resource // 默认 fonts.Regular
	Bold    Resource // 默认 fonts.Bold
	// Scale 是 PNG 输出时每个布局像素对应的图像像素数，<= 0 时取 1。
	Scale  float64
	Logger *slog.Logger
}

// Resource can be provided either by Bytes or by Path (fonts.Load syntax).
type Resource struct {
	Bytes []byte
	Path  string
}

func (res Resource) load(fallback string) ([]byte, error) {
	if len(res.Bytes) > 0 {
		return res.Bytes, nil
	}
	path := res.Path
	if path == "" {
		path = fallback
	}
	return fonts.Load(path)
}

// NewRenderer loads the fonts eagerly so that measuring never fails later.
func NewRenderer(opts Options) (*Renderer, error) {
	regular, err := opts.Regular.load(fonts.Regular)
	if err != nil {
		return nil, err
	}
	bold, err := opts.Bold.load(fonts.Bold)
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily("timeline")
	if err := family.LoadFont(regular, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载常规字体失败: %w", err)
	}
	if err := family.LoadFont(bold, 0, canvas.FontBold); err != nil {
		return nil, fmt.Errorf("加载粗体字体失败: %w", err)
	}
	r := &Renderer{
		family: family,
		scale:  opts.Scale,
		log:    opts.Logger,
		faces:  map[faceKey]*canvas.FontFace{},
	}
	if r.scale <= 0 {
		r.scale = 1
	}
	if r.log == nil {
		r.log = slog.New(slog.DiscardHandler)
	}
	return r, nil
}

// MeasureText 实现 layout.TextMeasurer：返回单行文本的宽度与行高（px）。
func (r *Renderer) MeasureText(text string, font layout.Font) (float64, float64) {
	face := r.face(font, layout.ColorText, 1)
	return face.TextWidth(text) * layout.MmToPx, face.Metrics().LineHeight * layout.MmToPx
}

// Render draws the scene onto a white background and encodes it.
func (r *Renderer) Render(scene *layout.Scene, format renderer.Format) ([]byte, error) {
	if scene == nil {
		return nil, fmt.Errorf("渲染场景为空")
	}
	w, h := scene.Width()*layout.PxToMm, scene.Height()*layout.PxToMm
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("画布尺寸无效: %gx%g", scene.Width(), scene.Height())
	}

	c := canvas.New(w, h)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点
	ctx.SetFillColor(canvas.White)
	ctx.SetStrokeColor(canvas.Transparent)
	ctx.DrawPath(0, 0, canvas.Rectangle(w, h))

	for _, sh := range scene.Shapes() {
		r.drawShape(ctx, sh)
	}
	r.log.Debug("scene rendered", "format", format, "shapes", len(scene.Shapes()))

	var buf bytes.Buffer
	switch format {
	case renderer.FormatPDF:
		writer := pdf.New(&buf, w, h, nil)
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 PDF 失败: %w", err)
		}
	case renderer.FormatSVG:
		writer := svg.New(&buf, w, h, nil)
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 SVG 失败: %w", err)
		}
	case renderer.FormatPNG:
		img := rasterizer.Draw(c, canvas.DPMM(layout.MmToPx*r.scale), canvas.DefaultColorSpace)
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("写入 PNG 失败: %w", err)
		}
	default:
		return nil, fmt.Errorf("不支持的输出格式 %q", format)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawShape(ctx *canvas.Context, sh *layout.Shape) {
	st := sh.Style()
	x, y := sh.X+sh.DX, sh.Y+sh.DY
	switch sh.Kind {
	case layout.ShapeLine:
		if st.StrokeWidth <= 0 {
			return
		}
		r.applyPaint(ctx, layout.Style{StrokeColor: st.StrokeColor, StrokeWidth: st.StrokeWidth, StrokeOpacity: st.StrokeOpacity})
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo((sh.X2-sh.X)*layout.PxToMm, (sh.Y2-sh.Y)*layout.PxToMm)
		ctx.DrawPath(x*layout.PxToMm, y*layout.PxToMm, p)
	case layout.ShapeRect:
		r.applyPaint(ctx, st)
		ctx.DrawPath(x*layout.PxToMm, y*layout.PxToMm, canvas.Rectangle(sh.Width*layout.PxToMm, sh.Height*layout.PxToMm))
	case layout.ShapeCircle:
		r.applyPaint(ctx, st)
		rad := sh.R * layout.PxToMm
		// canvas.Circle 以路径起点为圆心
		ctx.DrawPath(x*layout.PxToMm, y*layout.PxToMm, canvas.Circle(rad))
	case layout.ShapeText:
		r.drawText(ctx, sh, x, y)
	}
}

// drawText 绘制单行文本；(x, y) 是锚点，y 为文本纵向中心。
func (r *Renderer) drawText(ctx *canvas.Context, sh *layout.Shape, x, y float64) {
	st := sh.Style()
	col := layout.ColorText
	opacity := 1.0
	if st.FillColor != nil {
		col, opacity = *st.FillColor, st.FillOpacity
	}
	face := r.face(st.Font(), col, opacity)

	var align canvas.TextAlign
	switch st.Anchor {
	case layout.AnchorStart:
		align = canvas.Left
	case layout.AnchorEnd:
		align = canvas.Right
	default:
		align = canvas.Center
	}

	// 基线：文本顶部（纵向中心减半个测量高度）加上字体上升部
	_, top := sh.TextOrigin()
	baseline := (y+top)*layout.PxToMm + face.Metrics().Ascent
	ax := x * layout.PxToMm
	line := canvas.NewTextLine(face, sh.Text, align)

	if st.Rotation == 0 {
		ctx.DrawText(ax, baseline, line)
		return
	}
	ctx.Push()
	ctx.ComposeView(canvas.Identity.RotateAbout(st.Rotation, ax, y*layout.PxToMm))
	ctx.DrawText(ax, baseline, line)
	ctx.Pop()
}

func (r *Renderer) applyPaint(ctx *canvas.Context, st layout.Style) {
	if st.FillColor != nil {
		ctx.SetFillColor(colorFromLayout(*st.FillColor, st.FillOpacity))
	} else {
		ctx.SetFillColor(canvas.Transparent)
	}
	if st.StrokeWidth > 0 {
		ctx.SetStrokeColor(colorFromLayout(st.StrokeColor, st.StrokeOpacity))
		ctx.SetStrokeWidth(st.StrokeWidth * layout.PxToMm)
	} else {
		ctx.SetStrokeColor(canvas.Transparent)
		ctx.SetStrokeWidth(0)
	}
}

// face 返回缓存的字体面；字号由 px 换算为 pt。
func (r *Renderer) face(font layout.Font, col layout.Color, opacity float64) *canvas.FontFace {
	size := font.Size
	if size <= 0 {
		size = 12
	}
	key := faceKey{sizePt: size * layout.PxToPt, bold: font.Bold(), color: colorFromLayout(col, opacity)}

	r.faceMu.Lock()
	defer r.faceMu.Unlock()
	if f, ok := r.faces[key]; ok {
		return f
	}
	style := canvas.FontRegular
	if key.bold {
		style = canvas.FontBold
	}
	f := r.family.Face(key.sizePt, key.color, style, canvas.FontNormal)
	r.faces[key] = f
	return f
}

// colorFromLayout 转换颜色；opacity <= 0 视为不透明。
func colorFromLayout(c layout.Color, opacity float64) color.RGBA {
	if opacity <= 0 || opacity > 1 {
		opacity = 1
	}
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, opacity)
}
