package errors

import (
	"strings"
	"testing"
)

func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"uuid", "5a1d2c8e-0c5e-4b4e-9b8a-1f0f2d3e4c5b", false},
		{"slug", "user-model", false},
		{"with slashes", "/schemas/User", false},
		{"unicode", "模型", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 513), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"tab", "foo\tbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateNodeID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateDocumentFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"json", "petstore.json", false},
		{"yaml", "petstore.yaml", false},
		{"yml upper", "PETSTORE.YML", false},

		{"empty", "", true},
		{"with path /", "docs/petstore.json", true},
		{"with path \\", "docs\\petstore.json", true},
		{"no extension", "petstore", true},
		{"toml", "petstore.toml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocumentFilename(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDocumentFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
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
		{"simple", "api.json", false},
		{"nested", "docs/api/api.yaml", false},
		{"dot dir", "./api.json", false},

		{"empty", "", true},
		{"absolute", "/etc/passwd", true},
		{"traversal", "docs/../../secret", true},
		{"backslash", "docs\\api.json", true},
		{"null byte", "api\x00.json", true},
		{"too long", strings.Repeat("a", 501), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		allowed  []string
		wantCode Code
	}{
		{"allowed", "svg", []string{"json", "dot", "svg"}, ""},
		{"empty", "", []string{"json"}, ErrCodeInvalidFormat},
		{"unsupported", "png", []string{"json"}, ErrCodeUnsupported},
		{"case sensitive", "JSON", []string{"json"}, ErrCodeUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormat(tt.format, tt.allowed...)
			if got := GetCode(err); got != tt.wantCode {
				t.Errorf("ValidateFormat(%q) code = %q, want %q", tt.format, got, tt.wantCode)
			}
		})
	}
}
