package parser

import "errors"

// Error kinds returned by the parser. Callers match them with errors.Is;
// the wrapping message names the section and entry that failed.
var (
	// ErrNotFound means an expected marker never occurred.
	ErrNotFound = errors.New("marker not found")
	// ErrMalformedEntry means the boundary, species line or a required
	// value could not be located.
	ErrMalformedEntry = errors.New("malformed entry")
	// ErrInvalidNumber means a numeric field did not parse.
	ErrInvalidNumber = errors.New("invalid number")
	// ErrUnexpectedEOF means the input ended mid-section.
	ErrUnexpectedEOF = errors.New("unexpected end of input")
)
