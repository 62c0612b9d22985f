// Package sheetstore appends accepted submissions as rows to the destination
// Google spreadsheet and probes its reachability for health checks.
package sheetstore

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/MaxiCo1/fwg-api-test/internal/credentials"
)

// Client abstracts the two Sheets API calls the store issues, so tests can
// substitute a fake without a network round trip.
type Client interface {
	AppendValues(ctx context.Context, spreadsheetID, writeRange string, row []string) (updatedRange string, err error)
	GetSpreadsheet(ctx context.Context, spreadsheetID string) error
}

// Store issues authenticated calls against one destination spreadsheet.
// It is immutable after construction and safe for concurrent use.
type Store struct {
	client        Client
	spreadsheetID string
	writeRange    string
	appendTimeout time.Duration
	healthTimeout time.Duration
}

// Options bound the outbound calls and name the destination sheet.
type Options struct {
	SpreadsheetID string
	SheetName     string
	AppendTimeout time.Duration
	HealthTimeout time.Duration
}

// New builds a Store backed by the real Sheets API, authenticated as the
// given credential.
func New(ctx context.Context, cred credentials.Credential, opts Options) (*Store, error) {
	svc, err := sheets.NewService(ctx, option.WithTokenSource(cred.TokenSource(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return NewWithClient(&googleClient{svc: svc}, opts), nil
}

// NewWithClient builds a Store over an arbitrary Client implementation.
func NewWithClient(client Client, opts Options) *Store {
	return &Store{
		client:        client,
		spreadsheetID: opts.SpreadsheetID,
		writeRange:    opts.SheetName + "!A:Q",
		appendTimeout: opts.AppendTimeout,
		healthTimeout: opts.HealthTimeout,
	}
}

// Append writes one row at the end of the target range. The call runs under
// the configured deadline; when the deadline wins the outcome is a timeout
// StoreError and the in-flight remote call is no longer awaited. A single
// attempt is made, classification of the failure is left to the caller's
// status mapping, and no retry happens here.
func (s *Store) Append(ctx context.Context, row []string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.appendTimeout)
	defer cancel()

	updatedRange, err := s.client.AppendValues(ctx, s.spreadsheetID, s.writeRange, row)
	if err != nil {
		return "", Classify(err)
	}
	return updatedRange, nil
}

// Probe performs a metadata-only read of the destination spreadsheet under
// the health timeout. It never touches stored rows.
func (s *Store) Probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.healthTimeout)
	defer cancel()

	if err := s.client.GetSpreadsheet(ctx, s.spreadsheetID); err != nil {
		return Classify(err)
	}
	return nil
}

// googleClient adapts *sheets.Service to the Client interface.
type googleClient struct {
	svc *sheets.Service
}

func (g *googleClient) AppendValues(ctx context.Context, spreadsheetID, writeRange string, row []string) (string, error) {
	values := make([]any, len(row))
	for i, cell := range row {
		values[i] = cell
	}
	resp, err := g.svc.Spreadsheets.Values.
		Append(spreadsheetID, writeRange, &sheets.ValueRange{Values: [][]any{values}}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("append values: %w", err)
	}
	if resp.Updates == nil {
		return "", nil
	}
	return resp.Updates.UpdatedRange, nil
}

func (g *googleClient) GetSpreadsheet(ctx context.Context, spreadsheetID string) error {
	_, err := g.svc.Spreadsheets.Get(spreadsheetID).Fields("spreadsheetId").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get spreadsheet: %w", err)
	}
	return nil
}
