package battleship

import (
	"cmp"
	"math"
	"slices"
)

const MinGridSize int = 3

type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewCoordinates(x, y int) Coordinates {
	return Coordinates{X: x, Y: y}
}

// InBounds reports whether c lies on a square grid of the given size.
func (c Coordinates) InBounds(gridSize int) bool {
	return c.X >= 0 && c.X < gridSize && c.Y >= 0 && c.Y < gridSize
}

// Distance is the Euclidean distance between two cells.
func (c Coordinates) Distance(other Coordinates) float64 {
	return math.Hypot(float64(c.X-other.X), float64(c.Y-other.Y))
}

// Neighbors returns the in-bounds cells at Chebyshev distance 1 from c.
func (c Coordinates) Neighbors(gridSize int) []Coordinates {
	neighbors := make([]Coordinates, 0, 8)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			n := NewCoordinates(c.X+dx, c.Y+dy)
			if n.InBounds(gridSize) {
				neighbors = append(neighbors, n)
			}
		}
	}
	return neighbors
}

func compareCoordinates(a, b Coordinates) int {
	if a.X != b.X {
		return cmp.Compare(a.X, b.X)
	}
	return cmp.Compare(a.Y, b.Y)
}

// CellSet is a set of cells with value equality.
type CellSet map[Coordinates]struct{}

func NewCellSet(cells ...Coordinates) CellSet {
	set := make(CellSet, len(cells))
	for _, c := range cells {
		set.Add(c)
	}
	return set
}

func (s CellSet) Add(c Coordinates) {
	s[c] = struct{}{}
}

func (s CellSet) Has(c Coordinates) bool {
	_, prs := s[c]
	return prs
}

func (s CellSet) Union(other CellSet) {
	for c := range other {
		s.Add(c)
	}
}

// Disjoint reports whether none of cells is in s.
func (s CellSet) Disjoint(cells CellSet) bool {
	for c := range cells {
		if s.Has(c) {
			return false
		}
	}
	return true
}

func (s CellSet) Clone() CellSet {
	clone := make(CellSet, len(s))
	clone.Union(s)
	return clone
}

// Sorted returns the cells ordered by x then y. Random picks are made over
// this order so a seeded source always picks the same cell.
func (s CellSet) Sorted() []Coordinates {
	cells := make([]Coordinates, 0, len(s))
	for c := range s {
		cells = append(cells, c)
	}
	slices.SortFunc(cells, compareCoordinates)
	return cells
}
