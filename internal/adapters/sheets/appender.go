// Package sheets implements the record sink on top of the Google Sheets
// API: one confirmed purchase order becomes one appended row.
package sheets

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/osalazar/pobot/internal/domain"
	"github.com/osalazar/pobot/internal/observability"
)

const rowTimestampLayout = "2006-01-02 15:04:05"

type Appender struct {
	svc *sheets.Service
	now func() time.Time
}

// Open authenticates against the Sheets API and returns an Appender.
// Credentials come from the service-account file when given, otherwise
// from application default credentials.
func Open(ctx context.Context, credentialsFile string) (*Appender, error) {
	opts := []option.ClientOption{
		option.WithScopes(sheets.SpreadsheetsScope),
	}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	return &Appender{svc: svc, now: time.Now}, nil
}

// Append writes rec as a single appended row and returns the generated PO
// identifier. The id is derived from the clock; the row timestamp is a
// second clock read and may trail the id by call latency.
func (a *Appender) Append(ctx context.Context, destinationID string, rec domain.Record) (string, error) {
	if destinationID == "" {
		return "", domain.ErrSinkNotConfigured
	}

	poID := NewPOID(a.now())
	row := BuildRow(poID, rec, a.now())

	body := &sheets.ValueRange{
		Values: [][]any{row},
	}

	// Range "A1" appends after the last row with data in the sheet.
	_, err := a.svc.Spreadsheets.Values.Append(destinationID, "A1", body).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("sheets append %s: %w", poID, err)
	}

	observability.LoggerFromContext(ctx).Info("appended PO row",
		"po_id", poID,
		"sheet_id", destinationID,
	)
	return poID, nil
}

// NewPOID derives a purchase-order identifier from the given instant.
// Unix-second resolution is unique enough for a bot that collects five
// fields by hand.
func NewPOID(now time.Time) string {
	return fmt.Sprintf("PO-%d", now.Unix())
}

// BuildRow lays the record out in the sheet's fixed column order:
// identifier, item, quantity/amount, supplier, justification, requester,
// timestamp. Uncollected fields stay empty strings. The header row is
// assumed to exist in the sheet already and is never managed here.
func BuildRow(poID string, rec domain.Record, appendedAt time.Time) []any {
	return []any{
		poID,
		rec.ItemDescription,
		rec.QuantityAmount,
		rec.SupplierVendor,
		rec.Justification,
		rec.RequesterName,
		appendedAt.Format(rowTimestampLayout),
	}
}
