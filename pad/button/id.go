package button

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

type ID int

const (
	A ID = iota
	B
	X
	Y
)

// IDs lists every face button in index order.
var IDs = [...]ID{A, B, X, Y}

type Cell struct {
	Row    int
	Column int
}

type Metadata struct {
	Label string
	Color color.RGBA
	// Cell is the position in the 3x3 diamond grid
	Cell Cell
}

func (id ID) Valid() bool {
	switch id {
	case A, B, X, Y:
		return true
	}
	return false
}

func (id ID) Metadata() Metadata {
	switch id {
	case A:
		return Metadata{Label: "A", Color: color.RGBA{R: 120, G: 255, B: 120, A: 255}, Cell: Cell{Row: 2, Column: 1}}
	case B:
		return Metadata{Label: "B", Color: color.RGBA{R: 255, G: 100, B: 100, A: 255}, Cell: Cell{Row: 1, Column: 2}}
	case X:
		return Metadata{Label: "X", Color: color.RGBA{R: 100, G: 150, B: 255, A: 255}, Cell: Cell{Row: 1, Column: 0}}
	case Y:
		return Metadata{Label: "Y", Color: color.RGBA{R: 255, G: 220, B: 100, A: 255}, Cell: Cell{Row: 0, Column: 1}}
	}
	return Metadata{Label: strconv.Itoa(int(id))}
}

func (id ID) String() string {
	return id.Metadata().Label
}

// ParseID accepts a label (case-insensitive) or an integer index.
func ParseID(s string) (ID, error) {
	s = strings.TrimSpace(s)
	for _, id := range IDs {
		if strings.EqualFold(s, id.Metadata().Label) {
			return id, nil
		}
	}

	index, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid button id %q", s)
	}

	id := ID(index)
	if !id.Valid() {
		return id, &NotFoundError{ID: id}
	}

	return id, nil
}

type NotFoundError struct {
	ID ID
}

func (e *NotFoundError) Error() string {
	return "unknown button id: " + strconv.Itoa(int(e.ID))
}
