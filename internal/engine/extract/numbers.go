package extract

import (
	"strconv"
	"strings"

	"github.com/law-makers/autocrawl/internal/engine"
)

// Digits drops every non-digit from s and parses the rest, so "12 345 р."
// yields 12345 and "$4,500" yields 4500.
func Digits(s string) (int, error) {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, engine.NewMalformedNumberError(strings.TrimSpace(s))
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0, engine.NewError(engine.ErrCodeMalformedNumber, "number out of range", err).
			WithDetail("text", s)
	}
	return n, nil
}
