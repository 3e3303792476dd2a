package validation

import (
	"testing"

	jv "github.com/jellydator/validation"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/agentvault/agentvault/internal/errors"
)

func TestWrapValidationError(t *testing.T) {
	t.Run("nil error stays nil", func(t *testing.T) {
		assert.NoError(t, WrapValidationError(nil))
	})

	t.Run("wraps as invalid input", func(t *testing.T) {
		err := WrapValidationError(jv.NewError("validation_not_blank", "must not be blank"))
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.Contains(t, err.Error(), "must not be blank")
	})
}

func TestNotBlank(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "plain text", value: "agent", wantErr: false},
		{name: "empty string", value: "", wantErr: true},
		{name: "only whitespace", value: "   \t", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := jv.Validate(tt.value, NotBlank)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNoWhitespace(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "trimmed", value: "gpt-4o", wantErr: false},
		{name: "inner spaces allowed", value: "my agent", wantErr: false},
		{name: "leading space", value: " gpt-4o", wantErr: true},
		{name: "trailing space", value: "gpt-4o ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := jv.Validate(tt.value, NoWhitespace)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPrintable(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "plain text", value: "hello world", wantErr: false},
		{name: "unicode text", value: "héllo wörld", wantErr: false},
		{name: "newline", value: "hello\nworld", wantErr: true},
		{name: "null byte", value: "hello\x00world", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := jv.Validate(tt.value, Printable)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
