package timecode

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidArgument is returned for empty input or an unusable frame rate.
	ErrInvalidArgument = errors.New("timecode: invalid argument")
	// ErrFormat matches every *FormatError.
	ErrFormat = errors.New("timecode: invalid format")
)

// FormatError reports a string that is not in HH:MM:SS:FF form.
type FormatError struct {
	Input string
	// Pos is the byte offset where scanning stopped.
	Pos    int
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("timecode: invalid format %q at %d: %s", e.Input, e.Pos, e.Reason)
}

// Is lets errors.Is(err, ErrFormat) match.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}
