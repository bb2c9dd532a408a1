package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		valid bool
	}{
		{"plain latin", "pavel", true},
		{"cyrillic", "Вася", true},
		{"too short", "a", false},
		{"empty", "", false},
		{"reserved me", "me", false},
		{"digits", "pavel99", false},
		{"spaces", "pa vel", false},
		{"punctuation", "pavel!", false},
		{"at cap", strings.Repeat("a", 150), true},
		{"over cap", strings.Repeat("a", 151), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateUsername(tt.in)
			if tt.valid {
				assert.NoError(t, err)
				assert.Equal(t, tt.in, got)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		valid bool
	}{
		{"plain", "Pavel", true},
		{"single letter", "Ю", true},
		{"empty", "", false},
		{"me lowercase", "me", false},
		{"me uppercase", "ME", false},
		{"profanity", "shit", false},
		{"profanity mixed case", "ShIt", false},
		{"digits", "Pavel2", false},
		{"over cap", strings.Repeat("a", 151), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateName(tt.in)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
	}{
		{"pavel@example.com", true},
		{"p.a-v+el@sub.example.org", true},
		{"pavel", false},
		{"pavel@", false},
		{"@example.com", false},
		{"pavel@example", false},
		{"", false},
		{strings.Repeat("a", 250) + "@example.com", false},
	}

	for _, tt := range tests {
		_, err := ValidateEmail(tt.in)
		if tt.valid {
			assert.NoError(t, err, tt.in)
		} else {
			assert.Error(t, err, tt.in)
		}
	}
}

func TestValidateRecipeName(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		valid bool
	}{
		{"plain", "Pancakes", true},
		{"cyrillic with punctuation", "Блины с маслом, вкусно!", true},
		{"hyphenated", "Semi-sweet cake", true},
		{"one char", "A", false},
		{"whitespace padded single char", "  A  ", false},
		{"profanity", "shit", false},
		{"profanity padded", " Shit ", false},
		{"digits", "Cake 2", false},
		{"markup", "Cake <b>", false},
		{"over cap", strings.Repeat("a", 256), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateRecipeName(tt.in)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateText(t *testing.T) {
	_, err := ValidateText("Mix and bake")
	assert.NoError(t, err)

	_, err = ValidateText(" x ")
	assert.Error(t, err)

	_, err = ValidateText("")
	assert.Error(t, err)
}

func TestValidatePositive(t *testing.T) {
	got, err := ValidatePositive(1, "cooking_time")
	assert.NoError(t, err)
	assert.Equal(t, 1, got)

	_, err = ValidatePositive(0, "cooking_time")
	assert.Error(t, err)

	_, err = ValidatePositive(-5, "amount")
	assert.Error(t, err)
}
