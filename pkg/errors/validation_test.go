package errors

import (
	"testing"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "tile-1", false},
		{"uuid without dashes", "3f2a9c0d7e5b4c1a8f6e2d9b0a7c4e1f", false},
		{"unicode", "küche", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 200)), true},
		{"space", "tile 1", true},
		{"slash", "a/b", true},
		{"traversal", "..", true},
		{"newline", "a\nb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

type sample struct {
	Name  string  `validate:"required"`
	Width float64 `validate:"gte=0"`
	Kind  string  `validate:"omitempty,oneof=a b"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		in      sample
		wantErr bool
	}{
		{"valid", sample{Name: "n", Width: 3, Kind: "a"}, false},
		{"missing name", sample{Width: 3}, true},
		{"negative width", sample{Name: "n", Width: -1}, true},
		{"bad kind", sample{Name: "n", Kind: "c"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDiagram) {
				t.Errorf("ValidateStruct() returned wrong error code: %v", err)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidOrientation,
		ErrCodeInvalidTarget,
		ErrCodeInvalidFormat,
		ErrCodeInvalidDiagram,
		ErrCodeInvalidRecord,
		ErrCodeInvalidState,
		ErrCodeDuplicateNode,
		ErrCodeDuplicateConnection,
		ErrCodeNotFound,
		ErrCodeNodeNotFound,
		ErrCodeBoardNotFound,
		ErrCodeFileNotFound,
		ErrCodeStorage,
		ErrCodeTimeout,
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
