package common

import (
	"errors"
	"fmt"
	"strings"
)

// ConfigError indicates missing or invalid configuration.
type ConfigError struct {
	Setting string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Setting == "" {
		return "config: " + e.Message
	}
	return fmt.Sprintf("config %s: %s", e.Setting, e.Message)
}

// NewConfigError creates a new ConfigError.
func NewConfigError(setting, message string) *ConfigError {
	return &ConfigError{Setting: setting, Message: message}
}

// NotFoundError indicates the catalog file does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("catalog file not found: %s", e.Path)
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(path string) *NotFoundError {
	return &NotFoundError{Path: path}
}

// FormatError indicates the catalog file could not be parsed as a table.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("reading catalog %s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// NewFormatError creates a new FormatError.
func NewFormatError(path string, err error) *FormatError {
	return &FormatError{Path: path, Err: err}
}

// SchemaError indicates required columns are absent from the header row.
type SchemaError struct {
	Missing []string
	Found   []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("catalog is missing columns [%s], header has [%s]",
		strings.Join(e.Missing, ", "), strings.Join(e.Found, ", "))
}

// NewSchemaError creates a new SchemaError.
func NewSchemaError(missing, found []string) *SchemaError {
	return &SchemaError{Missing: missing, Found: found}
}

// TransportError indicates the webhook call itself failed or returned an unreadable body.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("webhook %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// NewTransportError creates a new TransportError.
func NewTransportError(op string, err error) *TransportError {
	return &TransportError{Op: op, Err: err}
}

// DeliveryError indicates the webhook answered with a non-zero status code.
type DeliveryError struct {
	Code    int
	Message string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("webhook rejected message: %s (code %d)", e.Message, e.Code)
}

// NewDeliveryError creates a new DeliveryError.
func NewDeliveryError(code int, message string) *DeliveryError {
	return &DeliveryError{Code: code, Message: message}
}

// IsFatal reports whether err aborts a run: configuration and catalog loading failures.
// Uses errors.As to traverse the full error chain, supporting wrapped errors.
func IsFatal(err error) bool {
	var cfg *ConfigError
	var notFound *NotFoundError
	var format *FormatError
	var schema *SchemaError

	switch {
	case errors.As(err, &cfg),
		errors.As(err, &notFound),
		errors.As(err, &format),
		errors.As(err, &schema):
		return true
	default:
		return false
	}
}
