package entities

import (
	"strconv"
)

type Availability int

const (
	Free Availability = iota
	Taken
)

func (a Availability) String() string {
	if a == Taken {
		return "taken"
	}
	return "free"
}

func (a Availability) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// SeatKind tells whether a seat was drawn on its own or as one half of a
// double-wide shape.
type SeatKind int

const (
	Single SeatKind = iota
	DoubleLeft
	DoubleRight
)

func (k SeatKind) String() string {
	switch k {
	case DoubleLeft:
		return "double-left"
	case DoubleRight:
		return "double-right"
	default:
		return "single"
	}
}

func (k SeatKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Seat is identified by its coordinates; Column is advisory and nil when
// the seatplan carries no usable label for it.
type Seat struct {
	X            float64      `json:"x"`
	Y            float64      `json:"y"`
	Column       *int         `json:"column,omitempty"`
	Availability Availability `json:"availability"`
	Kind         SeatKind     `json:"kind"`
	Rotation     Rotation     `json:"rotation"`
}

// Rotation mirrors an anchor's transform="rotate(degree, cx, cy)".
type Rotation struct {
	Degree float64 `json:"degree"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

type Row struct {
	Label string `json:"label"`
	Seats []Seat `json:"seats"`
}

type Platea []Row

// OccupiedSeat is the shape handed to persistence for every taken seat.
type OccupiedSeat struct {
	SeatNumber *string `json:"seatNumber"`
	X          int     `json:"x"`
	Y          int     `json:"y"`
}

func (p Platea) CountSeats() int {
	total := 0
	for _, row := range p {
		total += row.countSeats()
	}
	return total
}

// Clone returns a deep copy, columns included.
func (p Platea) Clone() Platea {
	out := make(Platea, len(p))
	for i, row := range p {
		seats := make([]Seat, len(row.Seats))
		for j, seat := range row.Seats {
			if seat.Column != nil {
				seat.Column = IntPtr(*seat.Column)
			}
			seats[j] = seat
		}
		out[i] = Row{Label: row.Label, Seats: seats}
	}
	return out
}

func (r Row) countSeats() int {
	return len(r.Seats)
}

// Columns lists the row's column numbers in seat order.
func (r Row) Columns() []*int {
	cols := make([]*int, len(r.Seats))
	for i, seat := range r.Seats {
		cols[i] = seat.Column
	}
	return cols
}

// SeatNumber joins the row label and the column, e.g. "B7".
func (r Row) SeatNumber(s Seat) *string {
	if s.Column == nil {
		return nil
	}
	n := r.Label + strconv.Itoa(*s.Column)
	return &n
}

func IntPtr(v int) *int {
	return &v
}
