package errors

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"os"
)

// Category represents the type of error.
type Category string

const (
	CategoryScan   Category = "scan"
	CategoryOutput Category = "output"
	CategoryConfig Category = "config"
	CategoryCLI    Category = "cli"
)

// Severity distinguishes failures from warnings.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Location represents a position in a file.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// CodedError is a structured error with a code, suggestions, and an
// optional file location.
type CodedError struct {
	// Code is a unique identifier (e.g., "E101").
	Code string

	// Category is the error type.
	Category Category

	// Severity is error unless the template says otherwise.
	Severity Severity

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the file position the error refers to, if any.
	Location *Location

	// Context contains the lines surrounding Location.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example shows the correct approach.
	Example string

	// Wrapped is the underlying error, if any.
	Wrapped error

	// contextStart is the line number of Context[0].
	contextStart int
}

// Error implements the error interface.
func (e *CodedError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *CodedError) Unwrap() error {
	return e.Wrapped
}

// IsWarning reports whether the error is a warning.
func (e *CodedError) IsWarning() bool {
	return e.Severity == SeverityWarning
}

// WithLocation adds a file position to the error.
func (e *CodedError) WithLocation(file string, line, column int) *CodedError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context, e.contextStart = readContextLines(file, line, 5)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *CodedError) WithSuggestion(s string) *CodedError {
	e.Suggestion = s
	return e
}

// WithExample adds an example to the error.
func (e *CodedError) WithExample(ex string) *CodedError {
	e.Example = ex
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *CodedError) WithDetail(d string) *CodedError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *CodedError) Wrap(err error) *CodedError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a file
// and returns them with the number of the first line read.
func readContextLines(filename string, targetLine, contextSize int) ([]string, int) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, 0
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := max(targetLine-contextSize/2, 1)
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines, startLine
}

// New creates a CodedError from a registered code.
func New(code string) *CodedError {
	template, ok := GetTemplate(code)
	if !ok {
		return &CodedError{
			Code:     code,
			Severity: SeverityError,
			Message:  "Unknown error",
		}
	}
	severity := template.Severity
	if severity == "" {
		severity = SeverityError
	}
	return &CodedError{
		Code:     code,
		Category: template.Category,
		Severity: severity,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a CodedError with a formatted message and no code.
func Newf(category Category, format string, args ...any) *CodedError {
	return &CodedError{
		Category: category,
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a CodedError. If the chain already
// holds a *CodedError, that error is returned.
func FromError(err error, code string) *CodedError {
	if err == nil {
		return nil
	}
	var ce *CodedError
	if stderrors.As(err, &ce) {
		return ce
	}
	return New(code).Wrap(err)
}
