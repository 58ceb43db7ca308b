package seatplan

import "errors"

var (
	// ErrMalformedDocument means the markup could not be read as a tree.
	ErrMalformedDocument = errors.New("malformed seatplan document")
	// ErrNoRows means the document parsed but not a single row came out of it.
	ErrNoRows = errors.New("seatplan has no rows")

	ErrRowLabelMissing = errors.New("group has no row label")
	ErrRowHasNoSeats   = errors.New("row has no seats")

	ErrMissingShape      = errors.New("seat has no shape")
	ErrMissingPosition   = errors.New("seat shape has no usable position")
	ErrUnknownShapeWidth = errors.New("seat shape width is neither single nor double")
	// ErrDoubleSeatLabel is raised when a double seat does not carry two
	// numeric labels. Single seats tolerate a missing label, double seats
	// do not.
	ErrDoubleSeatLabel = errors.New("double seat labels are missing or not numeric")
)
