package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shop-tg-bot/internal/validation"
)

func TestIsEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@mail.example.org",
		"user+tag@example.co",
	}
	invalid := []string{
		"",
		"plain text",
		"user@",
		"@example.com",
		"user@example",
		"user @example.com",
		"user@@example.com",
	}

	for _, email := range valid {
		assert.True(t, validation.IsEmail(email), "expected %q to be valid", email)
	}
	for _, email := range invalid {
		assert.False(t, validation.IsEmail(email), "expected %q to be invalid", email)
	}
}
