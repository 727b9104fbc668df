package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/kapu/astro-line-bot-go/internal/constants"
	"github.com/kapu/astro-line-bot-go/internal/util"
)

const ellipsis = "…"

var (
	tabsAndReturnsPattern = regexp.MustCompile(`[\t\r]+`)
	excessNewlinesPattern = regexp.MustCompile(`\n{3,}`)
)

// NormalizeReading shapes extracted text for display: tab/CR runs become one
// space, runs of three or more newlines become a paragraph break, the result
// is trimmed, and anything over the reading limit is cut with an ellipsis.
// Pure and idempotent.
func NormalizeReading(text string) string {
	text = tabsAndReturnsPattern.ReplaceAllString(text, " ")
	text = excessNewlinesPattern.ReplaceAllString(text, "\n\n")
	text = strings.TrimSpace(text)

	if utf8.RuneCountInString(text) > constants.ReadingLimits.MaxRunes {
		text = util.TruncateRunes(text, constants.ReadingLimits.TruncateRunes) + ellipsis
	}

	return text
}
