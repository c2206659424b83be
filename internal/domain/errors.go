package domain

import "fmt"

// ValidationError reports bad run configuration. It is fatal: nothing is
// processed once validation fails.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// ExtractionError reports a document that could not be extracted. It is
// recoverable: the document is skipped and the run continues.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// EncodingError reports an encoder failure. Fatal when the failed text is
// the query, recoverable (section dropped) otherwise.
type EncodingError struct {
	Query bool
	Err   error
}

func (e *EncodingError) Error() string {
	if e.Query {
		return fmt.Sprintf("encode query: %v", e.Err)
	}
	return fmt.Sprintf("encode section: %v", e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }
