package formula

import "fmt"

// MalformedFormulaError reports unparseable formula text with the byte
// offset where parsing failed.
type MalformedFormulaError struct {
	Offset  int
	Message string
}

func (e *MalformedFormulaError) Error() string {
	return fmt.Sprintf("malformed formula at offset %d: %s", e.Offset, e.Message)
}

// Common error messages
const (
	errEmptyInput          = "empty formula"
	errEmptyBrackets       = "empty bracket pair"
	errUnterminatedBracket = "unterminated %q bracket"
	errUnexpectedClose     = "unexpected closing bracket %q"
	errUnexpectedChar      = "unexpected character %q"
)
