package ot

import (
	"errors"
	"testing"
)

func TestSeverity(t *testing.T) {
	tests := []struct {
		severity Severity
		expected string
	}{
		{SeverityCritical, "critical"},
		{SeverityMajor, "major"},
		{SeverityWarning, "warning"},
		{Severity(99), "unknown"},
	}
	for _, tt := range tests {
		if s := tt.severity.String(); s != tt.expected {
			t.Errorf("Severity(%d).String() = %q; want %q", tt.severity, s, tt.expected)
		}
	}
}

func TestFontErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      FontError
		expected string
	}{
		{
			name: "with offset",
			err: FontError{
				Table:  T("hmtx"),
				Field:  "Size",
				Err:    ErrTruncated,
				Detail: "need 8 bytes, have 6",
				Offset: 1234,
			},
			expected: "hmtx/Size: table truncated: need 8 bytes, have 6 (offset 1234)",
		},
		{
			name:     "without field and detail",
			err:      FontError{Table: T("OS/2"), Err: ErrTruncated},
			expected: "OS/2: table truncated",
		},
		{
			name:     "short tag",
			err:      FontError{Table: T("CFF"), Err: ErrUnsupported, Detail: "CFF2"},
			expected: "CFF: unsupported format: CFF2",
		},
		{
			name:     "table directory",
			err:      FontError{Field: "TableRecords", Err: ErrMalformed, Detail: "table order"},
			expected: "directory/TableRecords: malformed table: table order",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if s := tt.err.Error(); s != tt.expected {
				t.Errorf("Error() = %q; want %q", s, tt.expected)
			}
		})
	}
}

func TestFontErrorUnwrap(t *testing.T) {
	var err error = &FontError{Table: T("cmap"), Err: ErrUnsupported}
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected error to wrap ErrUnsupported")
	}
	if errors.Is(err, ErrTruncated) {
		t.Errorf("expected error not to wrap ErrTruncated")
	}
	var fe *FontError
	if !errors.As(err, &fe) || fe.Table != T("cmap") {
		t.Errorf("expected errors.As to find the cmap FontError")
	}
}

func TestIssues(t *testing.T) {
	var is issues
	is.warn(T("name"), ErrMalformed, 40, "record %d out of bounds", 3)
	is.add(SeverityMajor, T("head"), "UnitsPerEm", ErrMalformed, 0, "invalid value %d", 7)
	err := is.fail(T("hhea"), "Size", ErrTruncated, 100, "%d bytes", 20)
	if len(is) != 3 {
		t.Fatalf("expected 3 issues, have %d", len(is))
	}
	if is[0].Severity != SeverityWarning || is[0].Detail != "record 3 out of bounds" {
		t.Errorf("unexpected warning %v", is[0])
	}
	if is[2] != err {
		t.Errorf("expected fail to return the recorded issue")
	}
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("expected critical issue to wrap ErrTruncated")
	}
	otf := &Font{issues: is}
	if n := len(otf.Issues(SeverityCritical)); n != 1 {
		t.Errorf("expected 1 critical issue, have %d", n)
	}
	if n := len(otf.Issues(SeverityMajor)); n != 2 {
		t.Errorf("expected 2 issues of severity major or higher, have %d", n)
	}
	if n := len(otf.Issues(SeverityWarning)); n != 3 {
		t.Errorf("expected 3 issues in total, have %d", n)
	}
}
