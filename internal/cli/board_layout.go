package cli

import "github.com/valter-silva-au/taskboard/pkg/models"

// Screen geometry of the board view. View renders exactly this layout so
// mouse coordinates can be mapped back to columns and cards.
const (
	titleLines     = 2 // title bar + blank line
	headerLines    = 2 // column name + rule
	cardLines      = 4 // rounded border around label and date/effort lines
	footerLines    = 3 // blank line + status line + help line
	columnGap      = 1
	minColumnWidth = 18

	defaultWidth  = 80
	defaultHeight = 24
)

type boardLayout struct {
	width    int
	height   int
	colWidth int
}

func newBoardLayout(width, height int) boardLayout {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	colWidth := (width - columnGap*(models.ColumnCount-1)) / models.ColumnCount
	if colWidth < minColumnWidth {
		colWidth = minColumnWidth
	}
	return boardLayout{width: width, height: height, colWidth: colWidth}
}

// columnX returns the first screen cell of column c.
func (l boardLayout) columnX(c models.Column) int {
	return int(c) * (l.colWidth + columnGap)
}

func (l boardLayout) cardsTop() int {
	return titleLines + headerLines
}

// visibleCards is how many cards fit in a column at once.
func (l boardLayout) visibleCards() int {
	n := (l.height - l.cardsTop() - footerLines) / cardLines
	if n < 1 {
		n = 1
	}
	return n
}

// columnHeight is the number of lines every column occupies.
func (l boardLayout) columnHeight() int {
	return headerLines + l.visibleCards()*cardLines
}

// columnAt maps a screen cell to the column whose drop zone contains it.
// Gaps between columns and the title and footer rows belong to no column.
func (l boardLayout) columnAt(x, y int) (models.Column, bool) {
	if y < titleLines || y >= titleLines+l.columnHeight() {
		return 0, false
	}
	for _, c := range models.AllColumns() {
		start := l.columnX(c)
		if x >= start && x < start+l.colWidth {
			return c, true
		}
	}
	return 0, false
}

// cardAt maps a screen cell to the card drawn there, given each column's
// scroll offset and length.
func (l boardLayout) cardAt(x, y int, offsets, counts [models.ColumnCount]int) (models.Column, int, bool) {
	c, ok := l.columnAt(x, y)
	if !ok || y < l.cardsTop() {
		return 0, 0, false
	}
	row := offsets[c] + (y-l.cardsTop())/cardLines
	if row >= counts[c] {
		return 0, 0, false
	}
	return c, row, true
}

// scrollTo returns the offset that keeps row visible, starting from offset.
func (l boardLayout) scrollTo(offset, row, count int) int {
	vis := l.visibleCards()
	if row < offset {
		offset = row
	}
	if row >= offset+vis {
		offset = row - vis + 1
	}
	if maxOff := count - vis; offset > maxOff {
		offset = maxOff
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}
