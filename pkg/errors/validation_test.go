package errors

import (
	"strings"
	"testing"
)

func TestValidateFormula(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "a and b", false},
		{"multiline", "a and\n\tb", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"too long", strings.Repeat("a|", MaxFormulaLength), true},
		{"control char", "a\x01b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormula(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormula(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidFormula) {
				t.Errorf("ValidateFormula(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateVariableName(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"a", false},
		{"x1", false},
		{"_tmp", false},
		{"carry_in", false},

		{"", true},
		{"1x", true},
		{"a-b", true},
		{"a b", true},
		{"ünï", true},
		{strings.Repeat("v", MaxVariableName+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateVariableName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateVariableName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOrder(t *testing.T) {
	if err := ValidateOrder([]string{"a", "b"}); err != nil {
		t.Errorf("ValidateOrder(a, b) = %v", err)
	}

	long := make([]string, MaxVariables+1)
	for i := range long {
		long[i] = "v"
	}
	if err := ValidateOrder(long); !Is(err, ErrCodeInvalidVariableOrder) {
		t.Errorf("ValidateOrder(%d vars) = %v, want INVALID_VARIABLE_ORDER", len(long), err)
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range Formats {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) = %v", f, err)
		}
	}
	if err := ValidateFormat("gif"); !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("ValidateFormat(gif) = %v, want INVALID_FORMAT", err)
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://quickchart.io/graphviz", false},
		{"http", "http://localhost:8080/graphviz", false},

		{"empty", "", true},
		{"ftp", "ftp://example.com", true},
		{"file", "file:///etc/passwd", true},
		{"no scheme", "quickchart.io", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "out", false},
		{"valid nested", "out/diagrams", false},
		{"valid with dots", "v1.2/task_a", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"absolute path", "/etc/passwd", true},
		{"path traversal", "../../etc", true},
		{"path traversal middle", "out/../bar", true},
		{"null byte", "out\x00bar", true},
		{"backslash", "out\\bar", true},
		{"newline", "out\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidFormula,
		ErrCodeInvalidVariableOrder,
		ErrCodeInvalidFormat,
		ErrCodeInvalidManifest,
		ErrCodeInvalidPath,
		ErrCodeOracleFailure,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeNetwork,
		ErrCodeTimeout,
		ErrCodeRateLimited,
		ErrCodeRenderFailed,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
