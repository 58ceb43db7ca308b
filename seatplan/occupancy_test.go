package seatplan

import (
	"testing"

	"github.com/paologalligit/go-seatplan/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHouseCapacity_IsStable(t *testing.T) {
	sp, err := Parse(readFixture(t, "two_rows.svg"))
	require.NoError(t, err)

	total := 0
	for _, row := range sp.Platea() {
		total += len(row.Seats)
	}
	for range 3 {
		assert.Equal(t, total, sp.HouseCapacity())
	}
}

func TestOccupiedSeats_CanBeRangedTwice(t *testing.T) {
	sp, err := Parse(readFixture(t, "two_rows.svg"))
	require.NoError(t, err)

	collect := func() []entities.OccupiedSeat {
		var seats []entities.OccupiedSeat
		for s := range sp.OccupiedSeats() {
			seats = append(seats, s)
		}
		return seats
	}
	first := collect()
	assert.Len(t, first, 2)
	assert.Equal(t, first, collect())
}

func TestOccupiedSeats_StopsEarly(t *testing.T) {
	sp, err := Parse(readFixture(t, "two_rows.svg"))
	require.NoError(t, err)

	count := 0
	for range sp.OccupiedSeats() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestOccupiedSeats_UnlabelledSeatHasNoNumber(t *testing.T) {
	tests := []struct {
		name  string
		x, y  string
		wantX int
		wantY int
	}{
		{name: "nearest integer", x: "10.6", y: "4.4", wantX: 11, wantY: 4},
		{name: "halves round to even", x: "22.5", y: "30.5", wantX: 22, wantY: 30},
		{name: "odd halves round up", x: "23.5", y: "41.5", wantX: 24, wantY: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			markup := `<svg><g><text>D</text>
				<a><rect x="` + tt.x + `" y="` + tt.y + `" width="10" ` + redStyle + `/></a>
			</g></svg>`

			sp, err := Parse([]byte(markup))
			require.NoError(t, err)

			var seats []entities.OccupiedSeat
			for s := range sp.OccupiedSeats() {
				seats = append(seats, s)
			}
			require.Len(t, seats, 1)
			assert.Nil(t, seats[0].SeatNumber)
			assert.Equal(t, tt.wantX, seats[0].X)
			assert.Equal(t, tt.wantY, seats[0].Y)
		})
	}
}
