package seatplan

import (
	"regexp"
)

// Red fill and stroke on the same rect mark a taken seat; red fill on a
// label marks a taken half of a double seat.
var (
	takenShapePattern = regexp.MustCompile(`(<rect\b[^>]*?\bfill\s*:\s*rgb\()\s*255\s*,\s*0\s*,\s*0\s*(\)[^>]*?\bstroke\s*:\s*rgb\()\s*255\s*,\s*0\s*,\s*0\s*(\))`)
	takenLabelPattern = regexp.MustCompile(`(<text\b[^>]*?\bfill\s*:\s*rgb\()\s*255\s*,\s*0\s*,\s*0\s*(\))`)
)

// Sanitize resets occupancy colours in seatplan markup: taken seat shapes
// turn green and taken labels turn black.
func Sanitize(markup string) string {
	markup = takenShapePattern.ReplaceAllString(markup, "${1}0, 255, 0${2}0, 255, 0${3}")
	return takenLabelPattern.ReplaceAllString(markup, "${1}0, 0, 0${2}")
}

// SanitizedSVG serializes the chart with every seat shown as free.
func (s *Seatplan) SanitizedSVG() (string, error) {
	markup, err := s.doc.String()
	if err != nil {
		return "", err
	}
	return Sanitize(markup), nil
}
