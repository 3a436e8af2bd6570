package hair

import "fmt"

// Error identifies what went wrong in a load, save or validation step.
// Every value satisfies the error interface so it can be matched with
// errors.Is / errors.As after being wrapped with an I/O cause.
type Error uint8

// Error kinds. Read and write failures get one kind per section so callers
// can tell which part of the file was at fault.
const (
	ErrNone Error = iota
	ErrOpeningFile
	ErrReadingFileHeader
	ErrInvalidSignature
	ErrReadingSegments
	ErrReadingVertices
	ErrReadingThickness
	ErrReadingTransparency
	ErrReadingColor
	ErrReadingTangents
	ErrReadingIndices
	ErrWritingFileHeader
	ErrWritingSegments
	ErrWritingVertices
	ErrWritingThickness
	ErrWritingTransparency
	ErrWritingColor
	ErrWritingTangents
	ErrWritingIndices
	ErrInvalidFormat
)

var errorNames = [...]string{
	ErrNone:                "none",
	ErrOpeningFile:         "opening file",
	ErrReadingFileHeader:   "reading file header",
	ErrInvalidSignature:    "invalid signature: expected 'HAIR'",
	ErrReadingSegments:     "reading segments",
	ErrReadingVertices:     "reading vertices",
	ErrReadingThickness:    "reading thickness",
	ErrReadingTransparency: "reading transparency",
	ErrReadingColor:        "reading color",
	ErrReadingTangents:     "reading tangents",
	ErrReadingIndices:      "reading indices",
	ErrWritingFileHeader:   "writing file header",
	ErrWritingSegments:     "writing segments",
	ErrWritingVertices:     "writing vertices",
	ErrWritingThickness:    "writing thickness",
	ErrWritingTransparency: "writing transparency",
	ErrWritingColor:        "writing color",
	ErrWritingTangents:     "writing tangents",
	ErrWritingIndices:      "writing indices",
	ErrInvalidFormat:       "invalid format",
}

// Error returns a human-readable description of the kind.
func (e Error) Error() string {
	if int(e) < len(errorNames) {
		return errorNames[e]
	}
	return fmt.Sprintf("unknown hair error (%d)", uint8(e))
}

// IsIO reports whether the kind is an I/O failure rather than a format problem.
func (e Error) IsIO() bool {
	return e != ErrNone && e != ErrInvalidSignature && e != ErrInvalidFormat
}

// wrap attaches the underlying cause to an error kind.
func wrap(kind Error, cause error) error {
	if cause == nil {
		return kind
	}
	return fmt.Errorf("%w: %w", kind, cause)
}
