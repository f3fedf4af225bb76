package dictfile

import "errors"

var (
	// ErrRead is returned when the file cannot be opened or read.
	ErrRead = errors.New("failed to read dictionary file")

	// ErrParse is returned when the extracted text is not a valid literal.
	// The underlying *literal.SyntaxError is kept in the chain.
	ErrParse = errors.New("failed to parse dictionary literal")

	// ErrNotMapping is returned by ReadDict when the literal is not a mapping.
	ErrNotMapping = errors.New("dictionary literal is not a mapping")
)
