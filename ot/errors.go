package ot

import (
	"errors"
	"fmt"
	"strings"
)

// Errors wrapped by the issues Parse reports. Test for them with errors.Is.
var (
	ErrNotSFNT     = errors.New("not an SFNT font")
	ErrMissing     = errors.New("table missing")
	ErrTruncated   = errors.New("table truncated")
	ErrMalformed   = errors.New("malformed table")
	ErrUnsupported = errors.New("unsupported format")
)

// Severity grades the issues found while parsing a font.
type Severity int8

const (
	// SeverityCritical issues make Parse fail.
	SeverityCritical Severity = iota
	// SeverityMajor issues leave some values of a table unusable.
	SeverityMajor
	// SeverityWarning issues cause a table to be skipped or values to be
	// defaulted.
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "critical"
	case SeverityMajor:
		return "major"
	case SeverityWarning:
		return "warning"
	}
	return "unknown"
}

// FontError is an issue found in a table of a font.
type FontError struct {
	Table    Tag    // zero for the table directory
	Field    string // part of the table, may be empty
	Err      error  // one of the Err… variables of this package
	Detail   string
	Severity Severity
	Offset   uint32 // byte offset within the font, 0 if unknown
}

func (e *FontError) Error() string {
	var b strings.Builder
	if e.Table == 0 {
		b.WriteString("directory")
	} else {
		b.WriteString(strings.TrimSpace(e.Table.String()))
	}
	if e.Field != "" {
		b.WriteString("/" + e.Field)
	}
	b.WriteString(": " + e.Err.Error())
	if e.Detail != "" {
		b.WriteString(": " + e.Detail)
	}
	if e.Offset > 0 {
		fmt.Fprintf(&b, " (offset %d)", e.Offset)
	}
	return b.String()
}

func (e *FontError) Unwrap() error {
	return e.Err
}

// issues collects the FontErrors of a parse run.
type issues []*FontError

func (is *issues) add(sev Severity, table Tag, field string, err error, offset uint32,
	format string, args ...any) *FontError {
	//
	e := &FontError{
		Table:    table,
		Field:    field,
		Err:      err,
		Detail:   fmt.Sprintf(format, args...),
		Severity: sev,
		Offset:   offset,
	}
	tracer().Debugf("%s: %s", sev, e)
	*is = append(*is, e)
	return e
}

// fail records a critical issue and returns it, ready to be returned by Parse.
func (is *issues) fail(table Tag, field string, err error, offset uint32, format string, args ...any) error {
	return is.add(SeverityCritical, table, field, err, offset, format, args...)
}

func (is *issues) warn(table Tag, err error, offset uint32, format string, args ...any) {
	is.add(SeverityWarning, table, "", err, offset, format, args...)
}
