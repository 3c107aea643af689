package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr string
	}{
		{"numeric point id", "5830", ""},
		{"mixed point id", "0089F", ""},
		{"empty", "", "id cannot be empty"},
		{"too long", strings.Repeat("a", 101), "id too long (max 100 characters)"},
		{"quote injection", `5830" OR lineid="1`, "id contains invalid characters"},
		{"space", "58 30", "id contains invalid characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.id)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
