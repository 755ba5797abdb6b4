package docx

import (
	"errors"
	"fmt"
)

// Sentinel errors for the conversion pipeline. All three are terminal for
// the affected package; they indicate structurally invalid input, not a
// transient condition, so nothing is retried.
var (
	// ErrCorruptArchive indicates the container cannot be opened or indexed.
	ErrCorruptArchive = errors.New("corrupt archive")
	// ErrMissingDocumentPart indicates the container opens but lacks the
	// main document entry.
	ErrMissingDocumentPart = errors.New("missing document part")
	// ErrMalformedXML indicates the document entry is not well-formed XML.
	ErrMalformedXML = errors.New("malformed XML")
)

// ErrorKind is the reportable classification of a conversion failure.
type ErrorKind string

// Reportable failure kinds surfaced per package.
const (
	KindCorruptArchive      ErrorKind = "corrupt-archive"
	KindMissingDocumentPart ErrorKind = "missing-document-part"
	KindMalformedXML        ErrorKind = "malformed-xml"
	KindInternal            ErrorKind = "internal"
)

// KindOf classifies an error from the conversion pipeline. Errors outside
// the three sentinel kinds (including recovered panics) report as internal.
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrCorruptArchive):
		return KindCorruptArchive
	case errors.Is(err, ErrMissingDocumentPart):
		return KindMissingDocumentPart
	case errors.Is(err, ErrMalformedXML):
		return KindMalformedXML
	default:
		return KindInternal
	}
}

// ConvertError wraps a pipeline failure with the originating package name.
type ConvertError struct {
	Name string // Display name of the package that failed
	Err  error  // Underlying error; unwraps to one of the sentinels
}

func (e *ConvertError) Error() string {
	return fmt.Sprintf("converting %s: %v", e.Name, e.Err)
}

func (e *ConvertError) Unwrap() error {
	return e.Err
}
