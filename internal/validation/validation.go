package validation

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/avelina-r/foodgram/backend/config"
	"github.com/avelina-r/foodgram/backend/internal/apperr"
)

var (
	emailRegex      = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	recipeNameRegex = regexp.MustCompile(`^[a-zA-Zа-яА-ЯёЁ .,!?\-]+$`)

	// Length caps are environment-invariant, matching the column sizes
	limits = config.DefaultLimits()
)

const profanityToken = "shit"

// ValidateUsername checks a candidate username. Usernames must be at least
// two characters, letters only, and may not be the reserved word "me".
func ValidateUsername(v string) (string, error) {
	if len([]rune(v)) < 2 {
		return "", apperr.Validation("username must be longer than 1 character")
	}
	if len([]rune(v)) > limits.MaxUsernameLen {
		return "", apperr.Newf(apperr.KindValidation, "username must be at most %d characters", limits.MaxUsernameLen)
	}
	if v == "me" {
		return "", apperr.Validation("username \"me\" is reserved, choose another")
	}
	for _, r := range v {
		if !unicode.IsLetter(r) {
			return "", apperr.Validation("username must contain only letters")
		}
	}
	return v, nil
}

// ValidateName checks a first or last name
func ValidateName(v string) (string, error) {
	if v == "" {
		return "", apperr.Validation("name must not be empty")
	}
	if len([]rune(v)) > limits.MaxNameLen {
		return "", apperr.Newf(apperr.KindValidation, "name must be at most %d characters", limits.MaxNameLen)
	}
	if strings.EqualFold(v, "me") {
		return "", apperr.Validation("write your real name")
	}
	if strings.EqualFold(v, profanityToken) {
		return "", apperr.Validation("no swearing, write your real name")
	}
	for _, r := range v {
		if !unicode.IsLetter(r) {
			return "", apperr.Validation("name must contain only letters")
		}
	}
	return v, nil
}

// ValidateEmail checks the local@domain.tld shape
func ValidateEmail(v string) (string, error) {
	if len(v) > limits.MaxEmailLen {
		return "", apperr.Newf(apperr.KindValidation, "email must be at most %d characters", limits.MaxEmailLen)
	}
	if !emailRegex.MatchString(v) {
		return "", apperr.Validation("invalid email address")
	}
	return v, nil
}

// ValidateRecipeName checks a recipe name: at least two characters after
// trimming, no profanity, and only letters (Latin/Cyrillic), spaces and
// basic punctuation.
func ValidateRecipeName(v string) (string, error) {
	if len([]rune(strings.TrimSpace(v))) < 2 {
		return "", apperr.Validation("recipe name must be at least 2 characters")
	}
	if len([]rune(v)) > limits.MaxRecipeNameLen {
		return "", apperr.Newf(apperr.KindValidation, "recipe name must be at most %d characters", limits.MaxRecipeNameLen)
	}
	if strings.EqualFold(strings.TrimSpace(v), profanityToken) {
		return "", apperr.Validation("choose another recipe name, no swearing")
	}
	if !recipeNameRegex.MatchString(v) {
		return "", apperr.Validation("recipe name may contain only letters, spaces and .,!?-")
	}
	return v, nil
}

// ValidateText checks a recipe description
func ValidateText(v string) (string, error) {
	if len([]rune(strings.TrimSpace(v))) < 2 {
		return "", apperr.Validation("description must be at least 2 characters")
	}
	return v, nil
}

// ValidatePositive checks cooking time and ingredient amounts
func ValidatePositive(v int, field string) (int, error) {
	if v < 1 {
		return 0, apperr.Newf(apperr.KindValidation, "%s must be at least 1", field)
	}
	return v, nil
}
