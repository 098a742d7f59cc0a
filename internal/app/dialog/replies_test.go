package dialog

import (
	"strings"
	"testing"
	"time"

	"github.com/osalazar/pobot/internal/domain"
)

func TestEscapeMarkdownV2(t *testing.T) {
	got := escapeMarkdownV2("a-b.c!d (e) *f*")
	want := `a\-b\.c\!d \(e\) \*f\*`
	if got != want {
		t.Fatalf("escapeMarkdownV2 = %q, want %q", got, want)
	}
}

func TestEscapeCodeSpanKeepsHyphens(t *testing.T) {
	// Inside a code span only backslash and backtick are significant, so a
	// PO id must pass through unchanged.
	if got := escapeCodeSpan("PO-1700000000"); got != "PO-1700000000" {
		t.Fatalf("escapeCodeSpan = %q, want identity", got)
	}
	if got := escapeCodeSpan("a`b\\c"); got != "a\\`b\\\\c" {
		t.Fatalf("escapeCodeSpan = %q", got)
	}
}

func TestSuccessReplyContainsRawID(t *testing.T) {
	r := successReply("PO-1700000000")
	if !r.MarkdownV2 {
		t.Fatal("success reply must be MarkdownV2")
	}
	if !strings.Contains(r.Text, "`PO-1700000000`") {
		t.Fatalf("success reply = %q, want the id in a code span", r.Text)
	}
}

func TestPreviewUsesPlaceholdersForEmptyFields(t *testing.T) {
	day := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	r := previewReply(domain.Record{ItemDescription: "10 laptops"}, day)

	if !strings.Contains(r.Text, "Item: 10 laptops") {
		t.Fatalf("preview missing item line:\n%s", r.Text)
	}
	if !strings.Contains(r.Text, "Supplier: N/A") {
		t.Fatalf("preview missing N/A placeholder:\n%s", r.Text)
	}
	if !strings.Contains(r.Text, "Date: 2026-08-31") {
		t.Fatalf("preview missing date:\n%s", r.Text)
	}
	if !strings.Contains(r.Text, msgConfirmInstruct) {
		t.Fatalf("preview missing confirmation instruction:\n%s", r.Text)
	}
}
