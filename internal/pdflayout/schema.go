package pdflayout

import "encoding/json"

type ElementType string

const (
	TypeText      ElementType = "text"
	TypeRectangle ElementType = "rectangle"
	TypeLine      ElementType = "line"
	TypeImage     ElementType = "image"
)

type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Element is a positioned draw instruction. Text and Image take their
// content from the page inputs under Name.
type Element interface {
	ElementName() string
	Type() ElementType
}

type Text struct {
	Name       string    `json:"name"`
	X          float64   `json:"x"`
	Y          float64   `json:"y"`
	Width      float64   `json:"width"`
	Height     float64   `json:"height"`
	FontSize   float64   `json:"fontSize"`
	Bold       bool      `json:"bold,omitempty"`
	Color      string    `json:"color"`
	Align      Alignment `json:"align"`
	LineHeight float64   `json:"lineHeight,omitempty"`
}

type Rectangle struct {
	Name        string  `json:"name"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Fill        string  `json:"fill,omitempty"`
	BorderColor string  `json:"borderColor,omitempty"`
	Radius      float64 `json:"radius,omitempty"`
}

// Line is horizontal; Thickness is the stroke width.
type Line struct {
	Name      string  `json:"name"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Length    float64 `json:"length"`
	Thickness float64 `json:"thickness"`
	Color     string  `json:"color"`
}

type Image struct {
	Name    string  `json:"name"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Opacity float64 `json:"opacity"`
}

func (e Text) ElementName() string      { return e.Name }
func (e Rectangle) ElementName() string { return e.Name }
func (e Line) ElementName() string      { return e.Name }
func (e Image) ElementName() string     { return e.Name }

func (Text) Type() ElementType      { return TypeText }
func (Rectangle) Type() ElementType { return TypeRectangle }
func (Line) Type() ElementType      { return TypeLine }
func (Image) Type() ElementType     { return TypeImage }

func (e Text) MarshalJSON() ([]byte, error) {
	type alias Text
	return json.Marshal(struct {
		Type ElementType `json:"type"`
		alias
	}{TypeText, alias(e)})
}

func (e Rectangle) MarshalJSON() ([]byte, error) {
	type alias Rectangle
	return json.Marshal(struct {
		Type ElementType `json:"type"`
		alias
	}{TypeRectangle, alias(e)})
}

func (e Line) MarshalJSON() ([]byte, error) {
	type alias Line
	return json.Marshal(struct {
		Type ElementType `json:"type"`
		alias
	}{TypeLine, alias(e)})
}

func (e Image) MarshalJSON() ([]byte, error) {
	type alias Image
	return json.Marshal(struct {
		Type ElementType `json:"type"`
		alias
	}{TypeImage, alias(e)})
}

// Schema is the ordered element list for one page.
type Schema []Element

// Document is the renderer-agnostic output: Template[i] pairs with Inputs[i].
type Document struct {
	Template []Schema           `json:"template"`
	Inputs   []map[string]string `json:"inputs"`
}

func (d Document) PageCount() int {
	return len(d.Template)
}

// pageBuilder keeps a page's schema and inputs in step.
type pageBuilder struct {
	schema Schema
	inputs map[string]string
}

func newPageBuilder() *pageBuilder {
	return &pageBuilder{inputs: make(map[string]string)}
}

func (b *pageBuilder) text(t Text, content string) {
	if t.Color == "" {
		t.Color = colorInk
	}
	if t.Align == "" {
		t.Align = AlignLeft
	}
	b.schema = append(b.schema, t)
	b.inputs[t.Name] = content
}

func (b *pageBuilder) rect(r Rectangle) {
	b.schema = append(b.schema, r)
}

func (b *pageBuilder) line(l Line) {
	if l.Color == "" {
		l.Color = colorInk
	}
	if l.Thickness == 0 {
		l.Thickness = 0.3
	}
	b.schema = append(b.schema, l)
}

// image is skipped when there is nothing to draw.
func (b *pageBuilder) image(img Image, data string) {
	if data == "" {
		return
	}
	b.schema = append(b.schema, img)
	b.inputs[img.Name] = data
}
