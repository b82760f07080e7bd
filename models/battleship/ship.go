package battleship

import (
	"encoding/json"
	"strings"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

const ShipLength int = 3

type Orientation uint8

const (
	OrientationVertical Orientation = iota
	OrientationHorizontal
)

var AllOrientations = []Orientation{OrientationVertical, OrientationHorizontal}

func (o Orientation) String() string {
	switch o {
	case OrientationVertical:
		return "V"
	case OrientationHorizontal:
		return "H"
	default:
		return "Unknown"
	}
}

func (o Orientation) IsValid() bool {
	return o == OrientationVertical || o == OrientationHorizontal
}

// ParseOrientation accepts v, vert, vertical, h, horiz and horizontal in any case.
func ParseOrientation(text string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "v", "vert", "vertical":
		return OrientationVertical, nil
	case "h", "horiz", "horizontal":
		return OrientationHorizontal, nil
	default:
		return 0, cerr.ErrInvalidOrientation(text)
	}
}

func (o Orientation) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

func (o *Orientation) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	parsed, err := ParseOrientation(text)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// Span returns the cells a ship of ShipLength occupies when centered on pivot.
// It fails when the pivot does not leave room on the orientation axis.
func Span(gridSize int, pivot Coordinates, orientation Orientation) ([]Coordinates, error) {
	if !orientation.IsValid() {
		return nil, cerr.ErrInvalidOrientation(orientation.String())
	}

	var cells []Coordinates
	switch orientation {
	case OrientationVertical:
		cells = []Coordinates{
			NewCoordinates(pivot.X, pivot.Y-1),
			pivot,
			NewCoordinates(pivot.X, pivot.Y+1),
		}
	case OrientationHorizontal:
		cells = []Coordinates{
			NewCoordinates(pivot.X-1, pivot.Y),
			pivot,
			NewCoordinates(pivot.X+1, pivot.Y),
		}
	}

	for _, c := range cells {
		if !c.InBounds(gridSize) {
			return nil, cerr.ErrPivotOutOfBounds(pivot.X, pivot.Y, orientation)
		}
	}
	return cells, nil
}

// Ship is a 3 cell linear ship. It is empty until placed and becomes
// read-only once sunk.
type Ship struct {
	gridSize    int
	orientation Orientation
	pivot       Coordinates
	cells       CellSet
	hits        CellSet
}

func NewShip(gridSize int) *Ship {
	return &Ship{
		gridSize: gridSize,
		cells:    make(CellSet, ShipLength),
		hits:     make(CellSet, ShipLength),
	}
}

// Place puts the ship on the grid centered on pivot. Any earlier hits are
// cleared. On error the ship is left untouched.
func (sh *Ship) Place(pivot Coordinates, orientation Orientation) error {
	cells, err := Span(sh.gridSize, pivot, orientation)
	if err != nil {
		return err
	}

	sh.orientation = orientation
	sh.pivot = pivot
	sh.cells = NewCellSet(cells...)
	sh.hits = make(CellSet, ShipLength)
	return nil
}

// RegisterShot records a hit when c is one of the ship's cells. Hitting the
// same cell twice does not count twice.
func (sh *Ship) RegisterShot(c Coordinates) bool {
	if !sh.cells.Has(c) {
		return false
	}
	sh.hits.Add(c)
	return true
}

func (sh *Ship) IsSunk() bool {
	return sh.IsPlaced() && len(sh.hits) == ShipLength
}

func (sh *Ship) IsPlaced() bool {
	return len(sh.cells) == ShipLength
}

func (sh *Ship) RemainingCells() []Coordinates {
	remaining := make(CellSet, len(sh.cells))
	for c := range sh.cells {
		if !sh.hits.Has(c) {
			remaining.Add(c)
		}
	}
	return remaining.Sorted()
}

func (sh *Ship) Cells() []Coordinates {
	return sh.cells.Sorted()
}

func (sh *Ship) Hits() []Coordinates {
	return sh.hits.Sorted()
}

func (sh *Ship) Orientation() Orientation {
	return sh.orientation
}

func (sh *Ship) Pivot() Coordinates {
	return sh.pivot
}

// Paint projects the ship onto render events: every cell sunk when the ship
// is sunk, otherwise alive cells overlaid with the hit ones.
func (sh *Ship) Paint() []CellEvent {
	if !sh.IsPlaced() {
		return nil
	}

	cells := sh.Cells()
	events := make([]CellEvent, 0, len(cells)+len(sh.hits))
	if sh.IsSunk() {
		for _, c := range cells {
			events = append(events, NewCellEvent(c, CellFriendlySunk))
		}
		return events
	}

	for _, c := range cells {
		events = append(events, NewCellEvent(c, CellFriendlyAlive))
	}
	for _, c := range sh.Hits() {
		events = append(events, NewCellEvent(c, CellFriendlyHit))
	}
	return events
}
