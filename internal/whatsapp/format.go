// Package whatsapp formats expense summaries for sharing via a WhatsApp
// deep link (https://wa.me/?text=...).
package whatsapp

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// MaxMessageLength caps the shared text. WhatsApp handles longer messages,
// but very long prefilled texts make the deep link unwieldy and some
// platforms silently drop them.
const MaxMessageLength = 3000

var (
	boldRe    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	headingRe = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	tableSep  = regexp.MustCompile(`(?m)^\s*\|?[-:| ]+\|?\s*$`)
)

// Format converts a markdown summary into WhatsApp text conventions:
// a trip header, single-asterisk bold, heading markers and markdown table
// separator rows stripped.
func Format(summary, tripName string) string {
	text := summary

	// Markdown table separator rows (|---|---|) are noise in chat.
	text = tableSep.ReplaceAllString(text, "")

	// WhatsApp bold uses single asterisks.
	text = boldRe.ReplaceAllString(text, "*$1*")

	// Flatten headings to bold lines.
	text = headingRe.ReplaceAllString(text, "")

	// Collapse the blank-line runs left behind by stripped rows.
	for strings.Contains(text, "\n\n\n") {
		text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	}

	return fmt.Sprintf("*%s - Expense Summary*\n\n%s", tripName, strings.TrimSpace(text))
}

// Truncate cuts the message to MaxMessageLength, breaking at a line boundary
// where possible and marking the cut.
func Truncate(message string) string {
	if len(message) <= MaxMessageLength {
		return message
	}

	const marker = "\n\n... (truncated)"
	cut := MaxMessageLength - len(marker)
	if i := strings.LastIndex(message[:cut], "\n"); i > cut/2 {
		cut = i
	}
	return message[:cut] + marker
}

// ShareURL builds the wa.me deep link that opens WhatsApp with the message
// prefilled.
func ShareURL(message string) string {
	return "https://wa.me/?text=" + url.QueryEscape(message)
}
