package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "already clean", raw: "5551234567", expected: "5551234567"},
		{name: "formatted", raw: "(555) 123-4567", expected: "5551234567"},
		{name: "extra digits are dropped", raw: "555123456789", expected: "5551234567"},
		{name: "too short", raw: "555-1234", expected: "5551234"},
		{name: "no digits", raw: "call me", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePhone(tt.raw))
		})
	}
}

func TestValidPhone(t *testing.T) {
	assert.True(t, ValidPhone("(555) 123-4567"))
	assert.True(t, ValidPhone("5551234567"))
	assert.False(t, ValidPhone("555-1234"))
	assert.False(t, ValidPhone(""))
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		expected bool
	}{
		{name: "plain address", email: "jane@example.com", expected: true},
		{name: "subdomain", email: "jane@mail.example.co.uk", expected: true},
		{name: "surrounding spaces", email: "  jane@example.com  ", expected: true},
		{name: "no at sign", email: "jane.example.com", expected: false},
		{name: "two at signs", email: "jane@@example.com", expected: false},
		{name: "no dot in domain", email: "jane@example", expected: false},
		{name: "dot at end of domain", email: "jane@example.", expected: false},
		{name: "empty local part", email: "@example.com", expected: false},
		{name: "empty", email: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidEmail(tt.email))
		})
	}
}
