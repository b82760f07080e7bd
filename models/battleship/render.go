package battleship

import (
	"encoding/json"
	"fmt"
)

type CellCategory uint8

const (
	CellEmpty CellCategory = iota
	CellPlayerHit
	CellPlayerMiss
	CellEnemyMiss
	CellFriendlyAlive
	CellFriendlyHit
	CellFriendlySunk
)

var cellCategoryNames = map[CellCategory]string{
	CellEmpty:         "empty",
	CellPlayerHit:     "player-hit",
	CellPlayerMiss:    "player-miss",
	CellEnemyMiss:     "enemy-miss",
	CellFriendlyAlive: "friendly-alive",
	CellFriendlyHit:   "friendly-hit",
	CellFriendlySunk:  "friendly-sunk",
}

func (c CellCategory) String() string {
	name, prs := cellCategoryNames[c]
	if !prs {
		return "unknown"
	}
	return name
}

func (c CellCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *CellCategory) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	for category, name := range cellCategoryNames {
		if name == text {
			*c = category
			return nil
		}
	}
	return fmt.Errorf("unknown cell category: %q", text)
}

type CellEvent struct {
	Coordinates Coordinates  `json:"coordinates"`
	Category    CellCategory `json:"category"`
}

func NewCellEvent(c Coordinates, category CellCategory) CellEvent {
	return CellEvent{Coordinates: c, Category: category}
}

// Renderer receives cell state changes. The game never waits on it.
type Renderer interface {
	Render(event CellEvent)
}

type RendererFunc func(event CellEvent)

func (f RendererFunc) Render(event CellEvent) {
	f(event)
}

type NopRenderer struct{}

func (NopRenderer) Render(CellEvent) {}

// MultiRenderer fans every event out to each renderer in order.
type MultiRenderer []Renderer

func (m MultiRenderer) Render(event CellEvent) {
	for _, r := range m {
		r.Render(event)
	}
}

// Board keeps the latest category painted on every cell.
type Board struct {
	size  int
	cells [][]CellCategory
}

var _ Renderer = (*Board)(nil)

func NewBoard(gridSize int) *Board {
	cells := make([][]CellCategory, gridSize)
	for y := range cells {
		cells[y] = make([]CellCategory, gridSize)
	}
	return &Board{size: gridSize, cells: cells}
}

func (b *Board) Render(event CellEvent) {
	if !event.Coordinates.InBounds(b.size) {
		return
	}
	b.cells[event.Coordinates.Y][event.Coordinates.X] = event.Category
}

func (b *Board) At(c Coordinates) CellCategory {
	if !c.InBounds(b.size) {
		return CellEmpty
	}
	return b.cells[c.Y][c.X]
}

// Rows returns a copy of the buffer indexed [y][x].
func (b *Board) Rows() [][]CellCategory {
	rows := make([][]CellCategory, b.size)
	for y := range b.cells {
		rows[y] = make([]CellCategory, b.size)
		copy(rows[y], b.cells[y])
	}
	return rows
}
