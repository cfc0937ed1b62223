package layout

type Placed struct {
	Block string
	Y     float64
	Line  Line
}

type Page struct {
	Number int
	Lines  []Placed
}

// Paginate places blocks top to bottom. A line that would cross the bottom
// margin starts a new page. A KeepTogether block that does not fit in what is
// left of the current page moves to a new page whole, unless it is taller
// than an empty page, in which case it flows like any other block.
func Paginate(f Frame, blocks []Block) []Page {
	top := f.Margins.Top
	bottom := f.PageHeight - f.Margins.Bottom

	pages := []Page{{Number: 1}}
	cur := &pages[0]
	y := top

	newPage := func() {
		pages = append(pages, Page{Number: len(pages) + 1})
		cur = &pages[len(pages)-1]
		y = top
	}

	for _, b := range blocks {
		if len(b.Lines) == 0 {
			continue
		}
		if b.KeepTogether && len(cur.Lines) > 0 && y+b.Height() > bottom && b.Height()-b.SpaceBefore <= f.ContentHeight() {
			newPage()
		}
		if len(cur.Lines) > 0 {
			y += b.SpaceBefore
		}
		for _, l := range b.Lines {
			if len(cur.Lines) > 0 && y+l.Height > bottom {
				newPage()
			}
			cur.Lines = append(cur.Lines, Placed{Block: b.Name, Y: y, Line: l})
			y += l.Height
		}
	}
	return pages
}
