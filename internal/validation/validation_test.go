package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"Valid", "correct-horse", false},
		{"Exactly Min Length", "12345678", false},
		{"Too Short", "1234567", true},
		{"Too Long", strings.Repeat("a", 129), true},
		{"Exactly Max Length", strings.Repeat("a", 128), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"Valid", "ama@example.com", false},
		{"Valid With Plus", "ama+tag@example.com", false},
		{"Missing At", "ama.example.com", true},
		{"Missing Domain", "ama@", true},
		{"Missing TLD", "ama@example", true},
		{"Too Long", strings.Repeat("a", 145) + "@example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateFullName(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateFullName("Ama Mensah"))
	assert.Error(t, ValidateFullName(""))
	assert.Error(t, ValidateFullName("   "))
	assert.Error(t, ValidateFullName(strings.Repeat("a", 101)))
}
