package intake

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var rowTime = time.Date(2026, time.March, 4, 15, 30, 45, 0, time.UTC)

func TestProjectRowFullyPopulated(t *testing.T) {
	t.Parallel()

	app := Application{
		FirstName:          "Ann",
		EmailAddress:       "ann@x.com",
		ProjectDescription: "portfolio site",
		PhoneNumber:        "+1 555 0100",
		WebHosting:         "yes",
		UTMSource:          "google",
		UTMMedium:          "cpc",
		UTMCampaign:        "spring",
		UTMTerm:            "free website",
		UTMContent:         "ad-a",
		AffiliateID:        "aff-9",
		FBCLID:             "fb-1",
		GCLID:              "gc-2",
		Language:           "es",
	}
	meta := Metadata{Mobile: true, UserAgent: "Mozilla/5.0"}

	row := ProjectRow(app, meta, rowTime)

	require.Len(t, row, RowColumnCount)
	require.Equal(t, []string{
		"04/03/2026 15:30:45",
		"portfolio site",
		"Ann",
		"ann@x.com",
		"+1 555 0100",
		"yes",
		"google",
		"cpc",
		"spring",
		"free website",
		"ad-a",
		"aff-9",
		"Mobile",
		"Mozilla/5.0",
		"fb-1",
		"gc-2",
		"es",
	}, row)
}

func TestProjectRowMinimalSubmission(t *testing.T) {
	t.Parallel()

	app := Application{FirstName: "Ann", EmailAddress: "ann@x.com", ProjectDescription: "site"}

	row := ProjectRow(app, Metadata{}, rowTime)

	require.Len(t, row, RowColumnCount)
	require.Equal(t, "Desktop", row[12])
	require.Equal(t, "en", row[16], "language defaults to en")
	// Optional fields project to empty cells, never omitted ones.
	for _, i := range []int{4, 5, 6, 7, 8, 9, 10, 11, 13, 14, 15} {
		require.Emptyf(t, row[i], "column %d should be empty", i)
	}
}

func TestProjectRowDeviceClass(t *testing.T) {
	t.Parallel()

	app := Application{FirstName: "Ann", EmailAddress: "ann@x.com", ProjectDescription: "site"}

	require.Equal(t, "Mobile", ProjectRow(app, Metadata{Mobile: true}, rowTime)[12])
	require.Equal(t, "Desktop", ProjectRow(app, Metadata{Mobile: false}, rowTime)[12])
}
