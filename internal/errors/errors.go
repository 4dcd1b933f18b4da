package errors

import (
	"fmt"
	"time"

	"github.com/standardbeagle/chorus/internal/types"
)

// Error types for the chorus analysis engine
type ErrorType string

const (
	// Indexing errors
	ErrorTypeIndexing ErrorType = "indexing"
	ErrorTypeParse    ErrorType = "parse"
	ErrorTypeSearch   ErrorType = "search"

	// File errors
	ErrorTypeFileNotFound ErrorType = "file_not_found"
	ErrorTypeFileTooLarge ErrorType = "file_too_large"
	ErrorTypePermission   ErrorType = "permission"

	// Configuration errors
	ErrorTypeConfig ErrorType = "config"

	// Internal errors
	ErrorTypeInternal ErrorType = "internal"

	// ErrorTypeCancellation marks a run abandoned because a newer revision
	// superseded it before it finished.
	ErrorTypeCancellation ErrorType = "cancellation"

	// ErrorTypeQueryCompile marks a pattern/query that failed to compile
	// against a language grammar (tree-sitter query syntax errors, bad
	// capture names, unsupported node kinds).
	ErrorTypeQueryCompile ErrorType = "query_compile"

	// ErrorTypeUnsupportedLanguage marks a request naming a language the
	// registry has no analyzer for.
	ErrorTypeUnsupportedLanguage ErrorType = "unsupported_language"

	// ErrorTypeInsufficientData marks a statistical computation that was
	// asked to produce a result (confidence interval, trend) from fewer
	// observations than its minimum sample floor.
	ErrorTypeInsufficientData ErrorType = "insufficient_data"

	// ErrorTypePatternNotFound marks a lookup against the pattern registry
	// for a detector/rule key that was never registered.
	ErrorTypePatternNotFound ErrorType = "pattern_not_found"

	// ErrorTypeStorage marks a transient failure writing to or reading from
	// the persistent store; the batch writer retries once before this
	// escalates to the caller.
	ErrorTypeStorage ErrorType = "storage"
)

// IndexingError represents an error during the indexing process
type IndexingError struct {
	Type        ErrorType
	FileID      types.FileID
	FilePath    string
	Operation   string
	Underlying  error
	Timestamp   time.Time
	Recoverable bool
}

// NewIndexingError creates a new indexing error with context
func NewIndexingError(op string, err error) *IndexingError {
	return &IndexingError{
		Type:       ErrorTypeIndexing,
		Operation:  op,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// WithFile adds file information to the error
func (e *IndexingError) WithFile(fileID types.FileID, path string) *IndexingError {
	e.FileID = fileID
	e.FilePath = path
	return e
}

// WithRecoverable marks the error as recoverable
func (e *IndexingError) WithRecoverable(recoverable bool) *IndexingError {
	e.Recoverable = recoverable
	return e
}

// Error implements the error interface
func (e *IndexingError) Error() string {
	if e.FilePath != "" {
		return fmt.Sprintf("%s %s failed for %s: %v", e.Type, e.Operation, e.FilePath, e.Underlying)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Type, e.Operation, e.Underlying)
}

// Unwrap returns the underlying error for errors.Is/As
func (e *IndexingError) Unwrap() error {
	return e.Underlying
}

// IsRecoverable checks if the error can be retried
func (e *IndexingError) IsRecoverable() bool {
	return e.Recoverable
}

// ParseError represents a parsing error
type ParseError struct {
	Type       ErrorType
	FileID     types.FileID
	FilePath   string
	Line       int
	Column     int
	Token      string
	Underlying error
	Timestamp  time.Time
}

// NewParseError creates a new parse error
func NewParseError(fileID types.FileID, path string, line, column int, token string, err error) *ParseError {
	return &ParseError{
		Type:       ErrorTypeParse,
		FileID:     fileID,
		FilePath:   path,
		Line:       line,
		Column:     column,
		Token:      token,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %s:%d:%d (near token %q): %v",
		e.FilePath, e.Line, e.Column, e.Token, e.Underlying)
}

// Unwrap returns the underlying error
func (e *ParseError) Unwrap() error {
	return e.Underlying
}

// SearchError represents a search operation error
type SearchError struct {
	Type       ErrorType
	Pattern    string
	Underlying error
	Timestamp  time.Time
}

// NewSearchError creates a new search error
func NewSearchError(pattern string, err error) *SearchError {
	return &SearchError{
		Type:       ErrorTypeSearch,
		Pattern:    pattern,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *SearchError) Error() string {
	return fmt.Sprintf("search failed for pattern %q: %v", e.Pattern, e.Underlying)
}

// Unwrap returns the underlying error
func (e *SearchError) Unwrap() error {
	return e.Underlying
}

// FileError represents a file-related error
type FileError struct {
	Type       ErrorType
	Path       string
	Operation  string
	Underlying error
	Timestamp  time.Time
}

// NewFileError creates a new file error
func NewFileError(op, path string, err error) *FileError {
	errorType := ErrorTypeFileNotFound
	if isPermissionError(err) {
		errorType = ErrorTypePermission
	}

	return &FileError{
		Type:       errorType,
		Path:       path,
		Operation:  op,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// isPermissionError checks if the error is a permission error
func isPermissionError(err error) bool {
	errStr := err.Error()
	return errStr == "permission denied" || errStr == "access denied"
}

// Error implements the error interface
func (e *FileError) Error() string {
	return fmt.Sprintf("file %s failed for %s: %v", e.Operation, e.Path, e.Underlying)
}

// Unwrap returns the underlying error
func (e *FileError) Unwrap() error {
	return e.Underlying
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field      string
	Value      string
	Underlying error
	Timestamp  time.Time
}

// NewConfigError creates a new config error
func NewConfigError(field, value string, err error) *ConfigError {
	return &ConfigError{
		Field:      field,
		Value:      value,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error for field %s (value %s): %v", e.Field, e.Value, e.Underlying)
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.Underlying
}

// CancellationError represents a run that was abandoned because a newer
// revision started before it completed.
type CancellationError struct {
	Operation   string
	Revision    uint64
	NewRevision uint64
	Timestamp   time.Time
}

// NewCancellationError creates a new cancellation error.
func NewCancellationError(op string, revision, newRevision uint64) *CancellationError {
	return &CancellationError{
		Operation:   op,
		Revision:    revision,
		NewRevision: newRevision,
		Timestamp:   time.Now(),
	}
}

// Error implements the error interface.
func (e *CancellationError) Error() string {
	return fmt.Sprintf("%s cancelled: revision %d superseded by %d", e.Operation, e.Revision, e.NewRevision)
}

// QueryCompileError represents a pattern/query that failed to compile
// against a language grammar.
type QueryCompileError struct {
	Type       ErrorType
	Language   string
	Query      string
	Underlying error
	Timestamp  time.Time
}

// NewQueryCompileError creates a new query compile error.
func NewQueryCompileError(language, query string, err error) *QueryCompileError {
	return &QueryCompileError{
		Type:       ErrorTypeQueryCompile,
		Language:   language,
		Query:      query,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface.
func (e *QueryCompileError) Error() string {
	return fmt.Sprintf("query compile failed for %s: %v", e.Language, e.Underlying)
}

// Unwrap returns the underlying error.
func (e *QueryCompileError) Unwrap() error {
	return e.Underlying
}

// UnsupportedLanguageError represents a request naming a language the
// registry has no analyzer for.
type UnsupportedLanguageError struct {
	Type      ErrorType
	Language  string
	Timestamp time.Time
}

// NewUnsupportedLanguageError creates a new unsupported language error.
func NewUnsupportedLanguageError(language string) *UnsupportedLanguageError {
	return &UnsupportedLanguageError{
		Type:      ErrorTypeUnsupportedLanguage,
		Language:  language,
		Timestamp: time.Now(),
	}
}

// Error implements the error interface.
func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported language: %s", e.Language)
}

// InsufficientDataError represents a statistical computation asked to
// produce a result from fewer observations than its minimum sample floor.
type InsufficientDataError struct {
	Type      ErrorType
	Subject   string
	Observed  int
	Required  int
	Timestamp time.Time
}

// NewInsufficientDataError creates a new insufficient data error.
func NewInsufficientDataError(subject string, observed, required int) *InsufficientDataError {
	return &InsufficientDataError{
		Type:      ErrorTypeInsufficientData,
		Subject:   subject,
		Observed:  observed,
		Required:  required,
		Timestamp: time.Now(),
	}
}

// Error implements the error interface.
func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for %s: have %d observations, need %d", e.Subject, e.Observed, e.Required)
}

// PatternNotFoundError represents a lookup against the pattern registry for
// a detector/rule key that was never registered.
type PatternNotFoundError struct {
	Type      ErrorType
	Detector  string
	Key       string
	Timestamp time.Time
}

// NewPatternNotFoundError creates a new pattern not found error.
func NewPatternNotFoundError(detector, key string) *PatternNotFoundError {
	return &PatternNotFoundError{
		Type:      ErrorTypePatternNotFound,
		Detector:  detector,
		Key:       key,
		Timestamp: time.Now(),
	}
}

// Error implements the error interface.
func (e *PatternNotFoundError) Error() string {
	return fmt.Sprintf("no pattern registered for detector %s key %q", e.Detector, e.Key)
}

// StorageError represents a failure reading from or writing to the
// persistent store. Op names the failing operation (e.g. "batch.Flush",
// "store.QueryFindings"); Retried reports whether the one-retry policy
// already ran before this error was returned.
type StorageError struct {
	Type      ErrorType
	Op        string
	Retried   bool
	Err       error
	Timestamp time.Time
}

// NewStorageError creates a new storage error.
func NewStorageError(op string, retried bool, err error) *StorageError {
	return &StorageError{
		Type:      ErrorTypeStorage,
		Op:        op,
		Retried:   retried,
		Err:       err,
		Timestamp: time.Now(),
	}
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	if e.Retried {
		return fmt.Sprintf("storage: %s failed after retry: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the wrapped error.
func (e *StorageError) Unwrap() error { return e.Err }

// MultiError represents multiple errors
type MultiError struct {
	Errors []error
}

// NewMultiError creates a new multi-error
func NewMultiError(errs []error) *MultiError {
	// Filter out nil errors
	filtered := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	return &MultiError{Errors: filtered}
}

// Error implements the error interface
func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors: %v", len(e.Errors), e.Errors)
}

// Unwrap returns all errors
func (e *MultiError) Unwrap() []error {
	return e.Errors
}
