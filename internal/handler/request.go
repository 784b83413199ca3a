package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Bounds on the trimmed text, counted in characters.
const (
	MinTextLength = 10
	MaxTextLength = 5000
)

var (
	ErrEmptyText    = errors.New("Text field cannot be empty")
	ErrTextTooShort = errors.New("Text must be at least 10 characters long")
	ErrTextTooLong  = errors.New("Text cannot exceed 5000 characters")
)

var (
	validate  = validator.New()
	textRules = fmt.Sprintf("required,min=%d,max=%d", MinTextLength, MaxTextLength)
)

// ValidateText trims raw and checks its length in characters.
func ValidateText(raw string) (string, error) {
	text := strings.TrimSpace(raw)

	err := validate.Var(text, textRules)
	if err == nil {
		return text, nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Tag() {
		case "required":
			return "", ErrEmptyText
		case "min":
			return "", ErrTextTooShort
		case "max":
			return "", ErrTextTooLong
		}
	}
	return "", err
}
