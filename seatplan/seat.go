package seatplan

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/paologalligit/go-seatplan/entities"
	"github.com/paologalligit/go-seatplan/svgdoc"
)

const (
	singleSeatWidth = 10
	doubleSeatWidth = 25
)

var rotatePattern = regexp.MustCompile(`rotate\(\s*([-+.\deE]+)(?:[\s,]+([-+.\deE]+)[\s,]+([-+.\deE]+))?\s*\)`)

// classifySeat turns one seat anchor into one seat, or two for a
// double-wide shape.
func classifySeat(anchor *svgdoc.Node) ([]entities.Seat, error) {
	shape, ok := anchor.Shape()
	if !ok {
		return nil, ErrMissingShape
	}
	x, y, err := position(shape)
	if err != nil {
		return nil, err
	}
	rotation := rotationOf(anchor, shape)

	width, ok := shape.Attr("width")
	if !ok {
		return nil, fmt.Errorf("%w: width attribute missing", ErrUnknownShapeWidth)
	}
	w, err := strconv.ParseFloat(strings.TrimSpace(width), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownShapeWidth, width)
	}

	switch w {
	case singleSeatWidth:
		return []entities.Seat{singleSeat(anchor, shape, x, y, rotation)}, nil
	case doubleSeatWidth:
		seats, err := doubleSeat(anchor, x, y, rotation)
		if err != nil {
			return nil, err
		}
		return seats[:], nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShapeWidth, width)
	}
}

// singleSeat takes its availability from the shape. A missing or
// non-numeric label is normal here (accessible and vibrating seats carry
// none) and leaves the column empty.
func singleSeat(anchor, shape *svgdoc.Node, x, y float64, rotation entities.Rotation) entities.Seat {
	seat := entities.Seat{
		X:            x,
		Y:            y,
		Availability: availabilityOf(shape),
		Kind:         entities.Single,
		Rotation:     rotation,
	}
	if labels := anchor.Labels(); len(labels) > 0 {
		if col, err := strconv.Atoi(labels[0].Text()); err == nil {
			seat.Column = entities.IntPtr(col)
		}
	}
	return seat
}

// doubleSeat expects exactly two numeric labels; each half takes its
// availability from its own label.
func doubleSeat(anchor *svgdoc.Node, x, y float64, rotation entities.Rotation) ([2]entities.Seat, error) {
	var seats [2]entities.Seat
	labels := anchor.Labels()
	if len(labels) != 2 {
		return seats, fmt.Errorf("%w: expected 2 labels, found %d", ErrDoubleSeatLabel, len(labels))
	}
	kinds := [2]entities.SeatKind{entities.DoubleLeft, entities.DoubleRight}
	for i, label := range labels {
		col, err := strconv.Atoi(label.Text())
		if err != nil {
			return seats, fmt.Errorf("%w: label %q", ErrDoubleSeatLabel, label.Text())
		}
		seats[i] = entities.Seat{
			X:            x,
			Y:            y,
			Column:       entities.IntPtr(col),
			Availability: availabilityOf(label),
			Kind:         kinds[i],
			Rotation:     rotation,
		}
	}
	return seats, nil
}

func availabilityOf(n *svgdoc.Node) entities.Availability {
	style, ok := n.Attr("style")
	if !ok {
		return entities.Free
	}
	return AvailabilityFromStyle(style)
}

func position(shape *svgdoc.Node) (float64, float64, error) {
	x, err := coordinate(shape, "x")
	if err != nil {
		return 0, 0, err
	}
	y, err := coordinate(shape, "y")
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func coordinate(shape *svgdoc.Node, name string) (float64, error) {
	raw, ok := shape.Attr(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s attribute missing", ErrMissingPosition, name)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrMissingPosition, name, raw)
	}
	return v, nil
}

// rotationOf reads rotate(degree[, cx, cy]) from the anchor, or from the
// shape when the anchor has no transform.
func rotationOf(anchor, shape *svgdoc.Node) entities.Rotation {
	transform, ok := anchor.Attr("transform")
	if !ok {
		if transform, ok = shape.Attr("transform"); !ok {
			return entities.Rotation{}
		}
	}
	m := rotatePattern.FindStringSubmatch(transform)
	if m == nil {
		return entities.Rotation{}
	}
	var r entities.Rotation
	r.Degree, _ = strconv.ParseFloat(m[1], 64)
	if m[2] != "" {
		r.X, _ = strconv.ParseFloat(m[2], 64)
		r.Y, _ = strconv.ParseFloat(m[3], 64)
	}
	return r
}
