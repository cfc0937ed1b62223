// Package layout describes documents as ordered blocks of lines and places
// them onto fixed-size pages. It knows nothing about any output format.
package layout

type Style struct {
	Size float64
	Bold bool
}

type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Span is one cell of a line. X and Width are relative to the left margin.
// When Image is set the span is drawn as that asset instead of Text, with
// Text as the fallback.
type Span struct {
	X     float64
	Width float64
	Text  string
	Style Style
	Align Align
	Image string
}

type Line struct {
	Height    float64
	Spans     []Span
	RuleBelow bool
}

type Block struct {
	Name         string
	SpaceBefore  float64
	KeepTogether bool
	Lines        []Line
}

func (b Block) Height() float64 {
	h := b.SpaceBefore
	for _, l := range b.Lines {
		h += l.Height
	}
	return h
}

type Margins struct {
	Top, Right, Bottom, Left float64
}

// Frame is the page geometry in the renderer's unit (mm for A4).
type Frame struct {
	PageWidth  float64
	PageHeight float64
	Margins    Margins
}

func A4() Frame {
	return Frame{
		PageWidth:  210,
		PageHeight: 297,
		Margins:    Margins{Top: 15, Right: 15, Bottom: 15, Left: 15},
	}
}

func (f Frame) ContentWidth() float64 { return f.PageWidth - f.Margins.Left - f.Margins.Right }

func (f Frame) ContentHeight() float64 { return f.PageHeight - f.Margins.Top - f.Margins.Bottom }

// Measurer reports rendered text width in frame units.
type Measurer interface {
	TextWidth(text string, st Style) float64
}

// Monospace measures every rune as CharWidth at size 10, scaled linearly.
type Monospace struct {
	CharWidth float64
}

func (m Monospace) TextWidth(text string, st Style) float64 {
	size := st.Size
	if size == 0 {
		size = 10
	}
	return float64(len([]rune(text))) * m.CharWidth * size / 10
}
