package docite

import "errors"

// Sentinel errors for library operations.
var (
	// ErrInput: source, bibliography or explicit style path is missing or unreadable.
	ErrInput = errors.New("invalid input")

	// ErrEmptyPath: a required path argument is empty. Also matches ErrInput.
	ErrEmptyPath = inputError("path cannot be empty")

	// ErrConversion: pandoc failed. The error message carries pandoc's stderr.
	ErrConversion = errors.New("pandoc conversion failed")

	// ErrEngineUnavailable: pandoc cannot be located or installed.
	ErrEngineUnavailable = errors.New("pandoc engine unavailable")

	// ErrPostProcess: the label rewrite or metadata strip pass could not
	// read or write the output file.
	ErrPostProcess = errors.New("post-processing failed")
)

// kindError is a sentinel that also matches a broader sentinel.
type kindError struct {
	msg  string
	kind error
}

func inputError(msg string) error { return &kindError{msg: msg, kind: ErrInput} }

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }
