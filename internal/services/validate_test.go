package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidCPF(t *testing.T) {
	tests := []struct {
		name  string
		cpf   string
		valid bool
	}{
		{"valid", "11144477735", true},
		{"valid well-known", "52998224725", true},
		{"valid sequential", "12345678909", true},
		{"valid with punctuation", "111.444.777-35", true},
		{"second check digit wrong", "11144477736", false},
		{"first check digit wrong", "11144477745", false},
		{"mutated leading digit", "21144477735", false},
		{"all digits identical", "11111111111", false},
		{"too short", "1114447773", false},
		{"too long", "111444777351", false},
		{"empty", "", false},
		{"letters only", "abcdefghijk", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, isValidCPF(tt.cpf))
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		valid bool
	}{
		{"minimal", "a@b.c", true},
		{"typical", "joao.silva@example.com.br", true},
		{"no dot in domain", "a@b", false},
		{"missing local part", "@b.c", false},
		{"missing domain", "a@", false},
		{"two at signs", "a@b@c.d", false},
		{"space in local", "a b@c.d", false},
		{"dot first in domain", "a@.c", false},
		{"dot last in domain", "a@b.", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, isValidEmail(tt.email))
		})
	}
}
