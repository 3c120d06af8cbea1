package toolbox

import "errors"

// ErrConfig is the parent of every configuration or validation failure.
// Callers can test for it with errors.Is.
var ErrConfig = errors.New("invalid configuration")

var (
	// ErrInvalidLength reports a zero, negative or oversized length request.
	ErrInvalidLength = configError("invalid length")
	// ErrInvalidRange reports a lower bound greater than the upper bound.
	ErrInvalidRange = configError("invalid range")
	// ErrEmptyAlphabet reports a string request with no characters to draw from.
	ErrEmptyAlphabet = configError("empty alphabet")
)

var (
	// ErrSpawn reports that the command interpreter could not be started.
	ErrSpawn = errors.New("spawning command")
	// ErrMalformedPair reports a key without an element separator.
	ErrMalformedPair = errors.New("malformed key-value pair")
	// ErrDuplicateKey reports a key that appeared twice in the input.
	ErrDuplicateKey = errors.New("duplicate key")
)

type kindError struct {
	msg    string
	parent error
}

func configError(msg string) error {
	return &kindError{msg: msg, parent: ErrConfig}
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.parent }
