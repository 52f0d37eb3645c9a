package nfe

import (
	"errors"
	"fmt"
)

// ErrUndecodableDocument is returned when none of the candidate
// encodings can decode the document bytes.
var ErrUndecodableDocument = errors.New("document is not decodable as UTF-8, ISO-8859-1 or Windows-1252")

// MalformedDocumentError means the bytes are not well-formed XML, or the
// NFe root structure could not be located.
type MalformedDocumentError struct {
	Reason string
	Err    error
}

func (e *MalformedDocumentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed document: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed document: %s", e.Reason)
}

func (e *MalformedDocumentError) Unwrap() error { return e.Err }

// ExtractionError means a structurally required element is entirely
// missing, so no usable invoice can be produced from the document.
type ExtractionError struct {
	Element string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("document is structurally unusable: required element %q is missing", e.Element)
}
