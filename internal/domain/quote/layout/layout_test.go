package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mono = Monospace{CharWidth: 1}

func TestWrap(t *testing.T) {
	st := Style{Size: 10}

	lines := Wrap(mono, "14 Oxford Road, Rosebank, Johannesburg, 2196", st, 20)
	assert.Equal(t, []string{"14 Oxford Road,", "Rosebank,", "Johannesburg, 2196"}, lines)
	for _, l := range lines {
		assert.LessOrEqual(t, mono.TextWidth(l, st), 20.0)
	}
}

func TestWrap_KeepsNewlinesAndSplitsLongWords(t *testing.T) {
	st := Style{Size: 10}

	assert.Equal(t, []string{"a b", "c"}, Wrap(mono, "a b\n\nc", st, 10))
	assert.Equal(t, []string{"abcde", "fghij", "k"}, Wrap(mono, "abcdefghijk", st, 5))
	assert.Empty(t, Wrap(mono, "   ", st, 5))
}

func TestWrap_ScalesWithFontSize(t *testing.T) {
	lines := Wrap(mono, "one two three", Style{Size: 20}, 12)
	assert.Equal(t, []string{"one", "two", "three"}, lines)
}

func TestTruncate(t *testing.T) {
	st := Style{Size: 10}
	assert.Equal(t, "short", Truncate(mono, "short", st, 10))
	got := Truncate(mono, "a much longer description", st, 10)
	assert.Equal(t, "a much ...", got)
	assert.LessOrEqual(t, mono.TextWidth(got, st), 10.0)
}

func lines(n int, h float64) []Line {
	out := make([]Line, n)
	for i := range out {
		out[i] = Line{Height: h, Spans: []Span{{Text: strings.Repeat("x", i+1)}}}
	}
	return out
}

func smallFrame() Frame {
	return Frame{PageWidth: 100, PageHeight: 100, Margins: Margins{Top: 10, Bottom: 10, Left: 10, Right: 10}}
}

func TestPaginate_SinglePage(t *testing.T) {
	pages := Paginate(smallFrame(), []Block{
		{Name: "header", Lines: lines(3, 10)},
		{Name: "table", SpaceBefore: 5, Lines: lines(2, 10)},
	})
	require.Len(t, pages, 1)
	require.Len(t, pages[0].Lines, 5)
	assert.Equal(t, 10.0, pages[0].Lines[0].Y)
	assert.Equal(t, 45.0, pages[0].Lines[3].Y)
	assert.Equal(t, "table", pages[0].Lines[3].Block)
}

func TestPaginate_LinesOverflow(t *testing.T) {
	pages := Paginate(smallFrame(), []Block{{Name: "table", Lines: lines(12, 10)}})
	require.Len(t, pages, 2)
	assert.Len(t, pages[0].Lines, 8)
	assert.Len(t, pages[1].Lines, 4)
	assert.Equal(t, 2, pages[1].Number)
	assert.Equal(t, 10.0, pages[1].Lines[0].Y)
}

func TestPaginate_KeepTogetherMovesBlock(t *testing.T) {
	pages := Paginate(smallFrame(), []Block{
		{Name: "table", Lines: lines(6, 10)},
		{Name: "footer", SpaceBefore: 5, KeepTogether: true, Lines: lines(3, 10)},
	})
	require.Len(t, pages, 2)
	assert.Len(t, pages[0].Lines, 6)
	require.Len(t, pages[1].Lines, 3)
	assert.Equal(t, "footer", pages[1].Lines[0].Block)
	assert.Equal(t, 10.0, pages[1].Lines[0].Y, "no spacing at the top of a fresh page")
}

func TestPaginate_KeepTogetherFitsStays(t *testing.T) {
	pages := Paginate(smallFrame(), []Block{
		{Name: "table", Lines: lines(5, 10)},
		{Name: "footer", SpaceBefore: 5, KeepTogether: true, Lines: lines(2, 10)},
	})
	require.Len(t, pages, 1)
	assert.Equal(t, 65.0, pages[0].Lines[5].Y)
}

func TestPaginate_OversizedKeepTogetherFlows(t *testing.T) {
	pages := Paginate(smallFrame(), []Block{
		{Name: "intro", Lines: lines(1, 10)},
		{Name: "huge", KeepTogether: true, Lines: lines(10, 10)},
	})
	require.Len(t, pages, 2)
	assert.Len(t, pages[0].Lines, 8)
	assert.Equal(t, "huge", pages[0].Lines[1].Block)
}

func TestPaginate_SkipsEmptyBlocks(t *testing.T) {
	pages := Paginate(A4(), []Block{{Name: "empty"}, {Name: "body", SpaceBefore: 8, Lines: lines(1, 5)}})
	require.Len(t, pages, 1)
	assert.Equal(t, 15.0, pages[0].Lines[0].Y)
}

func TestFrame(t *testing.T) {
	f := A4()
	assert.Equal(t, 180.0, f.ContentWidth())
	assert.Equal(t, 267.0, f.ContentHeight())
	assert.Equal(t, 25.0, Block{SpaceBefore: 5, Lines: lines(2, 10)}.Height())
}
