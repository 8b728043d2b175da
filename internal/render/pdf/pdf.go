package pdf

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/gompdf/htmlflow/internal/layout"
	"github.com/gompdf/htmlflow/internal/pagination"
	"github.com/gompdf/htmlflow/internal/style"
	"github.com/gompdf/htmlflow/internal/text"
)

// Renderer handles rendering to PDF
type Renderer struct {
	// FontFamily is one of the standard PDF families: Helvetica, Times or
	// Courier.
	FontFamily string
	// RenderBackgrounds controls whether span backgrounds are painted
	RenderBackgrounds bool

	enc *text.Encoder
	log *zap.Logger
}

// RenderOptions contains options for rendering
type RenderOptions struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
	Producer string
	// PageSize defaults to A4.
	PageSize pagination.PageSize
	// Orientation is "P" for portrait, "L" for landscape
	Orientation string
	// Margins default to pagination.DefaultMargins when zero.
	Margins pagination.Margins
}

// NewRenderer creates a new PDF renderer
func NewRenderer(log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{
		FontFamily:        "Helvetica",
		RenderBackgrounds: true,
		enc:               text.NewEncoder(),
		log:               log.Named("pdf"),
	}
}

// FontFamily maps a CSS font family name to a standard PDF family.
func FontFamily(name string) string {
	first, _, _ := strings.Cut(name, ",")
	first = strings.Trim(strings.TrimSpace(first), `'"`)
	switch strings.ToLower(first) {
	case "times", "times new roman", "serif":
		return "Times"
	case "courier", "courier new", "monospace":
		return "Courier"
	}
	return "Helvetica"
}

// RenderFile renders root to a PDF file, creating its directory if needed.
func (r *Renderer) RenderFile(root layout.Unit, outputPath string, options RenderOptions) error {
	outputDir := filepath.Dir(outputPath)
	if _, err := os.Stat(outputDir); os.IsNotExist(err) {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := r.Render(root, f, options); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Render renders a layout tree as PDF to w. Units are stacked top to
// bottom; paragraphs are wrapped to the content width and break across
// pages between lines.
func (r *Renderer) Render(root layout.Unit, w io.Writer, options RenderOptions) error {
	size := options.PageSize
	if size.Width <= 0 || size.Height <= 0 {
		size = pagination.PageSizeA4
	}
	if strings.EqualFold(options.Orientation, "L") {
		size = size.Landscape()
	}
	margins := options.Margins
	if margins == (pagination.Margins{}) {
		margins = pagination.DefaultMargins
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: size.Width, Ht: size.Height},
	})
	pdf.SetMargins(margins.Left, margins.Top, margins.Right)
	pdf.SetAutoPageBreak(false, margins.Bottom)
	pdf.SetTitle(options.Title, true)
	pdf.SetAuthor(options.Author, true)
	pdf.SetSubject(options.Subject, true)
	pdf.SetKeywords(options.Keywords, true)
	pdf.SetCreator(options.Creator, true)
	pdf.SetProducer(options.Producer, true)

	st := &renderState{
		r:      r,
		pdf:    pdf,
		images: map[string]registered{},
	}
	st.pg = pagination.NewPaginator(size, margins, pdf.AddPage)

	st.unit(root, margins.Left, st.pg.ContentWidth(), style.AlignNone)
	if st.pg.Pages() == 0 {
		st.pg.Reserve(0)
	}
	r.log.Debug("Rendered document",
		zap.String("size", size.Name),
		zap.Int("pages", st.pg.Pages()),
		zap.Int("images", len(st.images)),
	)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

type registered struct {
	name string
	img  preparedImage
	info *fpdf.ImageInfoType
	err  error
}

// renderState is the state of one Render call.
type renderState struct {
	r      *Renderer
	pdf    *fpdf.Fpdf
	pg     *pagination.Paginator
	images map[string]registered
}

// unit renders u into the column starting at x. align is the alignment of
// the enclosing container, used when u has none of its own.
func (st *renderState) unit(u layout.Unit, x, width float64, align style.Align) {
	switch v := u.(type) {
	case *layout.Box:
		pad := v.Frame.Padding
		if v.Frame.Align != style.AlignNone {
			align = v.Frame.Align
		}
		st.pg.Skip(pad.Top)
		for _, c := range v.Children {
			st.unit(c, x+pad.Left, width-pad.Left-pad.Right, align)
		}
		st.pg.Skip(pad.Bottom)
	case *layout.Paragraph:
		if v.Align != style.AlignNone {
			align = v.Align
		}
		st.paragraph(v, x, width, align)
	case *layout.Blank:
		st.pg.Reserve(v.Style.FontSize * v.Style.LineHeight)
	case *layout.Image:
		st.image(v, x, width, align)
	default:
		st.r.log.Debug("Unknown unit type", zap.String("type", fmt.Sprintf("%T", u)))
	}
}

// Width implements text.Measurer.
func (st *renderState) Width(s string, d style.Descriptor) float64 {
	st.setFont(d)
	return st.pdf.GetStringWidth(s)
}

func (st *renderState) setFont(d style.Descriptor) {
	fontStyle := ""
	if d.Bold() {
		fontStyle += "B"
	}
	if d.Italic {
		fontStyle += "I"
	}
	st.pdf.SetFont(st.r.FontFamily, fontStyle, text.Size(d))
}

func (st *renderState) paragraph(p *layout.Paragraph, x, width float64, align style.Align) {
	bodyX, bodyW := x, width
	marker := p.Marker.Text()
	if p.MarkerWidth > 0 {
		bodyX += p.MarkerWidth
		bodyW -= p.MarkerWidth
	}

	runs := make([]text.Run, 0, len(p.Spans))
	for _, s := range p.Spans {
		runs = append(runs, text.Run{Text: st.r.enc.Encode(s.Text), Style: s.Style})
	}
	lines := text.Wrap(text.Tokenize(runs, st), bodyW)

	for i, line := range lines {
		top := st.pg.Reserve(line.Height)
		baseline := top + (line.Height-line.Ascent)/2 + 0.8*line.Ascent

		if i == 0 && marker != "" {
			st.marker(p, marker, x, baseline)
		}

		offset, extra := 0.0, 0.0
		switch align {
		case style.AlignCenter:
			offset = (bodyW - line.Width) / 2
		case style.AlignRight:
			offset = bodyW - line.Width
		case style.AlignJustify:
			if n := line.Spaces(); !line.Hard && n > 0 && line.Width < bodyW {
				extra = (bodyW - line.Width) / float64(n)
			}
		}
		cx := bodyX + max(offset, 0)
		for _, t := range line.Tokens {
			w := t.Width
			if t.Space {
				w += extra
			}
			st.token(t, cx, w, top, baseline, line.Height)
			cx += w
		}
	}
}

// marker prints the list prefix in the style of the paragraph's first span.
func (st *renderState) marker(p *layout.Paragraph, marker string, x, baseline float64) {
	d := style.DefaultDescriptor()
	if len(p.Spans) > 0 {
		d = p.Spans[0].Style
	}
	d.Position = style.PositionNormal
	st.setFont(d)
	st.pdf.SetTextColor(int(d.Color.R), int(d.Color.G), int(d.Color.B))
	st.pdf.Text(x, baseline, st.r.enc.Encode(marker))
}

func (st *renderState) token(t text.Token, x, w, top, baseline, height float64) {
	d := t.Style
	pdf := st.pdf
	if st.r.RenderBackgrounds && d.HasBackground() {
		pdf.SetFillColor(int(d.Background.R), int(d.Background.G), int(d.Background.B))
		pdf.Rect(x, top, w, height, "F")
	}
	if !t.Space {
		st.setFont(d)
		pdf.SetTextColor(int(d.Color.R), int(d.Color.G), int(d.Color.B))
		pdf.Text(x, baseline+text.Rise(d), t.Text)
	}
	if d.Underline || d.Strikethrough {
		size := text.Size(d)
		y := baseline + text.Rise(d)
		pdf.SetDrawColor(int(d.Color.R), int(d.Color.G), int(d.Color.B))
		pdf.SetLineWidth(size * 0.05)
		if d.Underline {
			pdf.Line(x, y+size*0.12, x+w, y+size*0.12)
		}
		if d.Strikethrough {
			pdf.Line(x, y-size*0.3, x+w, y-size*0.3)
		}
	}
}

// image places img scaled down to the column width and the page height.
// Images that cannot be embedded fall back to their alt text.
func (st *renderState) image(img *layout.Image, x, width float64, align style.Align) {
	reg := st.register(img)
	if reg.err != nil {
		st.r.log.Warn("Skipping image", zap.String("src", img.Src), zap.Error(reg.err))
		if alt := strings.TrimSpace(img.Alt); alt != "" {
			st.paragraph(&layout.Paragraph{
				Node:  img.Node,
				Spans: []layout.Span{{Text: alt, Style: style.DefaultDescriptor()}},
			}, x, width, align)
		}
		return
	}

	w, h := reg.img.Width, reg.img.Height
	if w <= 0 || h <= 0 {
		w, h = reg.info.Extent()
	}
	if w <= 0 || h <= 0 {
		return
	}
	if w > width {
		h *= width / w
		w = width
	}
	if ch := st.pg.ContentHeight(); h > ch {
		w *= ch / h
		h = ch
	}

	top := st.pg.Reserve(h)
	offset := 0.0
	switch align {
	case style.AlignCenter:
		offset = (width - w) / 2
	case style.AlignRight:
		offset = width - w
	}
	st.pdf.ImageOptions(reg.name, x+max(offset, 0), top, w, h, false,
		fpdf.ImageOptions{ImageType: reg.img.Type}, 0, "")
}

// register embeds the image data once per source.
func (st *renderState) register(img *layout.Image) registered {
	key := img.Src
	if reg, ok := st.images[key]; ok {
		return reg
	}

	reg := registered{name: fmt.Sprintf("img%d", len(st.images))}
	reg.img, reg.err = prepareImage(img.Data)
	if reg.err == nil {
		reg.info = st.pdf.RegisterImageOptionsReader(reg.name,
			fpdf.ImageOptions{ImageType: reg.img.Type}, bytes.NewReader(reg.img.Data))
		if err := st.pdf.Error(); err != nil {
			reg.err = err
		} else if reg.info == nil {
			reg.err = fmt.Errorf("image %s was not registered", img.Src)
		}
	}
	st.images[key] = reg
	return reg
}
