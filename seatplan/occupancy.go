package seatplan

import (
	"iter"
	"math"

	"github.com/paologalligit/go-seatplan/entities"
)

// OccupiedSeats yields every taken seat, row by row. The sequence can be
// ranged over any number of times.
func (s *Seatplan) OccupiedSeats() iter.Seq[entities.OccupiedSeat] {
	return func(yield func(entities.OccupiedSeat) bool) {
		for _, row := range s.platea {
			for _, seat := range row.Seats {
				if seat.Availability != entities.Taken {
					continue
				}
				occupied := entities.OccupiedSeat{
					SeatNumber: row.SeatNumber(seat),
					X:          int(math.RoundToEven(seat.X)),
					Y:          int(math.RoundToEven(seat.Y)),
				}
				if !yield(occupied) {
					return
				}
			}
		}
	}
}

// HouseCapacity counts every seat; a double shape counts as two.
func (s *Seatplan) HouseCapacity() int {
	return s.platea.CountSeats()
}
