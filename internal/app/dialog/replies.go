package dialog

import (
	"fmt"
	"strings"
	"time"

	"github.com/osalazar/pobot/internal/domain"
)

// Reply is the single outbound message produced for one inbound event.
type Reply struct {
	Text       string
	MarkdownV2 bool
}

func plain(text string) Reply {
	return Reply{Text: text}
}

const (
	msgWelcome = "Hello! I am the purchase-order bot. Use /create_po to start creating a Purchase Order."

	msgPromptItem      = "Great! Let's create a new PO. What is the item or service you are purchasing?"
	msgPromptAmount    = "Got it. What is the quantity or total amount for this PO? (e.g., 5 units, or $250.00)"
	msgPromptSupplier  = "Understood. Who is the supplier or vendor?"
	msgPromptJustify   = "Almost there! Please provide a brief justification or project code for this PO."
	msgConfirmInstruct = "Is this correct? (Type 'yes' to confirm or 'cancel' to start over)"
	msgConfirmRetry    = "Please type 'yes' to confirm or 'cancel' to start over."

	msgCancelled       = "Purchase Order creation cancelled."
	msgNothingToCancel = "No active Purchase Order creation to cancel."
	msgNoSession       = "Please start by creating a Purchase Order using /create_po."
	msgUndefinedStep   = "I'm not sure what to do with that input right now. You might need to restart with /create_po or /cancel."

	msgInternalFault     = "Sorry, something went wrong. I couldn't find your PO data to finalize."
	msgSinkNotConfigured = "PO confirmed, but Google Sheet ID not configured. Cannot save PO. Please contact an admin."
)

func previewReply(rec domain.Record, today time.Time) Reply {
	preview := fmt.Sprintf(`PO Preview:
Item: %s
Amount/Qty: %s
Supplier: %s
Justification: %s
Requested by: %s
Date: %s`,
		orNA(rec.ItemDescription),
		orNA(rec.QuantityAmount),
		orNA(rec.SupplierVendor),
		orNA(rec.Justification),
		orNA(rec.RequesterName),
		today.Format("2006-01-02"),
	)
	return plain(preview + "\n\n" + msgConfirmInstruct)
}

func successReply(poID string) Reply {
	// The id sits in a code span, where only backslash and backtick are
	// significant, so the raw identifier survives in the message text.
	text := "PO `" + escapeCodeSpan(poID) + "` " +
		escapeMarkdownV2("created successfully and saved to Google Sheets!")
	return Reply{Text: text, MarkdownV2: true}
}

func sinkUnavailableReply(user domain.UserID) Reply {
	return plain(fmt.Sprintf("PO confirmed, but Google Sheets service could not be initialized. Please contact an admin. Ref: %s", user))
}

func sinkWriteFailureReply(user domain.UserID) Reply {
	return plain(fmt.Sprintf("PO confirmed, but failed to save to Google Sheets. Please contact an admin. Ref: %s", user))
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}

var markdownV2Escaper = strings.NewReplacer(
	"\\", "\\\\",
	"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]",
	"(", "\\(", ")", "\\)", "~", "\\~", "`", "\\`",
	">", "\\>", "#", "\\#", "+", "\\+", "-", "\\-",
	"=", "\\=", "|", "\\|", "{", "\\{", "}", "\\}",
	".", "\\.", "!", "\\!",
)

// escapeMarkdownV2 escapes the full MarkdownV2 reserved set for use in
// regular message text.
func escapeMarkdownV2(s string) string {
	return markdownV2Escaper.Replace(s)
}

var codeSpanEscaper = strings.NewReplacer("\\", "\\\\", "`", "\\`")

// escapeCodeSpan escapes the characters significant inside a MarkdownV2
// inline code span.
func escapeCodeSpan(s string) string {
	return codeSpanEscaper.Replace(s)
}
