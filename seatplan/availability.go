package seatplan

import (
	"regexp"
	"strconv"

	"github.com/paologalligit/go-seatplan/entities"
)

var fillPattern = regexp.MustCompile(`fill\s*:\s*rgb\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*\)`)

// AvailabilityFromStyle reads the fill colour out of an svg style string.
// Pure red means the seat is taken; any other colour, or no colour at all,
// means it is free.
func AvailabilityFromStyle(style string) entities.Availability {
	m := fillPattern.FindStringSubmatch(style)
	if m == nil {
		return entities.Free
	}
	var rgb [3]int
	for i := range rgb {
		v, err := strconv.Atoi(m[i+1])
		if err != nil {
			return entities.Free
		}
		rgb[i] = v
	}
	if rgb == [3]int{255, 0, 0} {
		return entities.Taken
	}
	return entities.Free
}
