// Package pdfrender rasterizes pdflayout documents with go-pdf/fpdf.
package pdfrender

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-bizdocs/internal/pdflayout"

	"github.com/go-pdf/fpdf"
)

var (
	ErrPageMismatch = errors.New("pdfrender: template and inputs page counts differ")
	ErrImageDecode  = errors.New("pdfrender: cannot decode image")
)

// Renderer turns a laid-out document into PDF bytes.
type Renderer interface {
	Render(ctx context.Context, doc pdflayout.Document) ([]byte, error)
}

type Option func(*FPDFRenderer)

func WithFontFamily(family string) Option {
	return func(r *FPDFRenderer) { r.fontFamily = family }
}

// WithCreationDate pins the PDF metadata date; identical inputs then give identical bytes.
func WithCreationDate(t time.Time) Option {
	return func(r *FPDFRenderer) { r.creationDate = t }
}

func WithTitle(title string) Option {
	return func(r *FPDFRenderer) { r.title = title }
}

type FPDFRenderer struct {
	fontFamily   string
	creationDate time.Time
	title        string
}

func New(opts ...Option) *FPDFRenderer {
	r := &FPDFRenderer{
		fontFamily:   "Helvetica",
		creationDate: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *FPDFRenderer) Render(ctx context.Context, doc pdflayout.Document) ([]byte, error) {
	if len(doc.Template) != len(doc.Inputs) {
		return nil, ErrPageMismatch
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCellMargin(0.5)
	pdf.SetCreationDate(r.creationDate)
	pdf.SetCatalogSort(true)
	if r.title != "" {
		pdf.SetTitle(r.title, true)
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, schema := range doc.Template {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pdf.AddPage()
		inputs := doc.Inputs[i]
		for _, el := range schema {
			if err := r.draw(pdf, tr, el, inputs); err != nil {
				return nil, fmt.Errorf("page %d element %q: %w", i+1, el.ElementName(), err)
			}
		}
		if pdf.Err() {
			return nil, pdf.Error()
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *FPDFRenderer) draw(pdf *fpdf.Fpdf, tr func(string) string, el pdflayout.Element, inputs map[string]string) error {
	switch e := el.(type) {
	case pdflayout.Text:
		r.drawText(pdf, tr, e, inputs[e.Name])
	case pdflayout.Rectangle:
		drawRect(pdf, e)
	case pdflayout.Line:
		red, green, blue := parseHex(e.Color)
		pdf.SetDrawColor(red, green, blue)
		pdf.SetLineWidth(e.Thickness)
		pdf.Line(e.X, e.Y, e.X+e.Length, e.Y)
	case pdflayout.Image:
		return drawImage(pdf, e, inputs[e.Name])
	default:
		return fmt.Errorf("unsupported element %T", el)
	}
	return nil
}

func (r *FPDFRenderer) drawText(pdf *fpdf.Fpdf, tr func(string) string, t pdflayout.Text, content string) {
	if content == "" {
		return
	}

	style := ""
	if t.Bold {
		style = "B"
	}
	pdf.SetFont(r.fontFamily, style, t.FontSize)
	red, green, blue := parseHex(t.Color)
	pdf.SetTextColor(red, green, blue)
	pdf.SetXY(t.X, t.Y)

	align := alignCode(t.Align)
	if t.LineHeight > 0 || strings.Contains(content, "\n") {
		lh := t.LineHeight
		if lh <= 0 {
			lh = t.FontSize * 0.45
		}
		pdf.MultiCell(t.Width, lh, tr(content), "", align, false)
		return
	}
	pdf.CellFormat(t.Width, t.Height, tr(content), "", 0, align, false, 0, "")
}

func drawRect(pdf *fpdf.Fpdf, rect pdflayout.Rectangle) {
	style := ""
	if rect.Fill != "" {
		red, green, blue := parseHex(rect.Fill)
		pdf.SetFillColor(red, green, blue)
		style += "F"
	}
	if rect.BorderColor != "" {
		red, green, blue := parseHex(rect.BorderColor)
		pdf.SetDrawColor(red, green, blue)
		pdf.SetLineWidth(0.2)
		style += "D"
	}
	if style == "" {
		return
	}
	if rect.Radius > 0 {
		pdf.RoundedRect(rect.X, rect.Y, rect.Width, rect.Height, rect.Radius, "1234", style)
		return
	}
	pdf.Rect(rect.X, rect.Y, rect.Width, rect.Height, style)
}

func drawImage(pdf *fpdf.Fpdf, img pdflayout.Image, data string) error {
	if data == "" {
		return nil
	}
	raw, imageType, err := DecodeImage(data)
	if err != nil {
		return err
	}

	sum := sha256.Sum256(raw)
	name := "img_" + hex.EncodeToString(sum[:8])
	opts := fpdf.ImageOptions{ImageType: imageType}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(raw))
	if pdf.Err() {
		return fmt.Errorf("%w: %v", ErrImageDecode, pdf.Error())
	}

	if img.Opacity > 0 && img.Opacity < 1 {
		pdf.SetAlpha(img.Opacity, "Normal")
		defer pdf.SetAlpha(1, "Normal")
	}
	pdf.ImageOptions(name, img.X, img.Y, img.Width, img.Height, false, opts, 0, "")
	return nil
}

func alignCode(a pdflayout.Alignment) string {
	switch a {
	case pdflayout.AlignCenter:
		return "C"
	case pdflayout.AlignRight:
		return "R"
	}
	return "L"
}

// parseHex reads "#rrggbb"; anything else is black.
func parseHex(s string) (int, int, int) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}
