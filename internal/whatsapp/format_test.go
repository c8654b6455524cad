package whatsapp

import (
	"net/url"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	summary := "## Totals\n\n**Food**: 80\n\n| Person | Paid |\n|--------|------|\n| Alice  | 80   |\n"

	got := Format(summary, "Goa 2026")

	if !strings.HasPrefix(got, "*Goa 2026 - Expense Summary*") {
		t.Errorf("missing header: %q", got)
	}
	if strings.Contains(got, "**") {
		t.Errorf("double asterisks survived: %q", got)
	}
	if !strings.Contains(got, "*Food*: 80") {
		t.Errorf("bold not converted: %q", got)
	}
	if strings.Contains(got, "##") {
		t.Errorf("heading marker survived: %q", got)
	}
	if strings.Contains(got, "|---") || strings.Contains(got, "|--------|") {
		t.Errorf("table separator survived: %q", got)
	}
	// Table content rows survive, only separators are dropped.
	if !strings.Contains(got, "| Alice  | 80   |") {
		t.Errorf("table row dropped: %q", got)
	}
}

func TestTruncate(t *testing.T) {
	short := "hello"
	if got := Truncate(short); got != short {
		t.Errorf("short message modified: %q", got)
	}

	long := strings.Repeat("line of expense detail\n", 400)
	got := Truncate(long)
	if len(got) > MaxMessageLength {
		t.Errorf("len = %d, want <= %d", len(got), MaxMessageLength)
	}
	if !strings.HasSuffix(got, "... (truncated)") {
		t.Errorf("missing truncation marker: %q", got[len(got)-40:])
	}
}

func TestShareURL(t *testing.T) {
	got := ShareURL("split: 50/50 & done")

	if !strings.HasPrefix(got, "https://wa.me/?text=") {
		t.Fatalf("url = %q", got)
	}

	parsed, err := url.Parse(got)
	if err != nil {
		t.Fatalf("invalid url: %v", err)
	}
	if parsed.Query().Get("text") != "split: 50/50 & done" {
		t.Errorf("text round-trip = %q", parsed.Query().Get("text"))
	}
}
