package sheetstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

// fakeClient records calls and returns canned results. With delay set it
// blocks until the context is done to simulate a call that never settles.
type fakeClient struct {
	updatedRange string
	appendErr    error
	getErr       error
	delay        time.Duration

	gotSpreadsheetID string
	gotWriteRange    string
	gotRow           []string
}

func (f *fakeClient) AppendValues(ctx context.Context, spreadsheetID, writeRange string, row []string) (string, error) {
	f.gotSpreadsheetID = spreadsheetID
	f.gotWriteRange = writeRange
	f.gotRow = row
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.appendErr != nil {
		return "", f.appendErr
	}
	return f.updatedRange, nil
}

func (f *fakeClient) GetSpreadsheet(ctx context.Context, spreadsheetID string) error {
	f.gotSpreadsheetID = spreadsheetID
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return f.getErr
}

func testOptions() Options {
	return Options{
		SpreadsheetID: "sheet-123",
		SheetName:     "Hoja 1",
		AppendTimeout: time.Second,
		HealthTimeout: time.Second,
	}
}

func TestAppendSucceeds(t *testing.T) {
	t.Parallel()

	client := &fakeClient{updatedRange: "Hoja 1!A42:Q42"}
	store := NewWithClient(client, testOptions())

	row := []string{"01/01/2026 12:00:00", "a website", "Ann"}
	updatedRange, err := store.Append(context.Background(), row)

	require.NoError(t, err)
	require.Equal(t, "Hoja 1!A42:Q42", updatedRange)
	require.Equal(t, "sheet-123", client.gotSpreadsheetID)
	require.Equal(t, "Hoja 1!A:Q", client.gotWriteRange)
	require.Equal(t, row, client.gotRow)
}

func TestAppendTimesOut(t *testing.T) {
	t.Parallel()

	client := &fakeClient{delay: 5 * time.Second}
	opts := testOptions()
	opts.AppendTimeout = 50 * time.Millisecond
	store := NewWithClient(client, opts)

	start := time.Now()
	_, err := store.Append(context.Background(), []string{"cell"})

	require.Less(t, time.Since(start), time.Second, "append must not hang past the bound")
	var serr *StoreError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, KindTimeout, serr.Kind)
}

func TestAppendClassifiesAPIError(t *testing.T) {
	t.Parallel()

	client := &fakeClient{appendErr: &googleapi.Error{Code: 403, Message: "The caller does not have permission"}}
	store := NewWithClient(client, testOptions())

	_, err := store.Append(context.Background(), []string{"cell"})

	var serr *StoreError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, KindPermission, serr.Kind)
}

func TestProbeSucceeds(t *testing.T) {
	t.Parallel()

	client := &fakeClient{}
	store := NewWithClient(client, testOptions())

	require.NoError(t, store.Probe(context.Background()))
	require.Equal(t, "sheet-123", client.gotSpreadsheetID)
}

func TestProbeClassifiesFailure(t *testing.T) {
	t.Parallel()

	client := &fakeClient{getErr: &googleapi.Error{Code: 404, Message: "Requested entity was not found"}}
	store := NewWithClient(client, testOptions())

	err := store.Probe(context.Background())

	var serr *StoreError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, KindNotFound, serr.Kind)
}

func TestClassify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"deadline", context.DeadlineExceeded, KindTimeout},
		{"unauthorized", &googleapi.Error{Code: 401, Message: "Invalid Credentials"}, KindAuth},
		{"permission", &googleapi.Error{Code: 403, Message: "The caller does not have permission"}, KindPermission},
		{"quota via 403", &googleapi.Error{Code: 403, Message: "Quota exceeded for quota metric"}, KindQuota},
		{"not found", &googleapi.Error{Code: 404, Message: "Requested entity was not found"}, KindNotFound},
		{"rate limited", &googleapi.Error{Code: 429, Message: "Rate Limit Exceeded"}, KindQuota},
		{"invalid grant", errors.New("oauth2: cannot fetch token: invalid_grant"), KindAuth},
		{"quota message", errors.New("quota exceeded for write requests"), KindQuota},
		{"opaque", errors.New("connection reset by peer"), KindUnknown},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			serr := Classify(tc.err)
			require.Equal(t, tc.want, serr.Kind)
			require.ErrorIs(t, serr, tc.err)
		})
	}
}
