package intake

import "time"

// RowColumnCount is the fixed width of the destination sheet; the column
// order below is a contract with its header row and must not change.
const RowColumnCount = 17

// timestampLayout matches the format the sheet's existing rows use.
const timestampLayout = "02/01/2006 15:04:05"

// ProjectRow maps a validated application plus request metadata onto one
// sheet row. Missing optional fields become empty cells, never omitted ones,
// so the row always has RowColumnCount cells. Pure; no I/O.
func ProjectRow(app Application, meta Metadata, ts time.Time) []string {
	device := "Desktop"
	if meta.Mobile {
		device = "Mobile"
	}

	language := app.Language
	if language == "" {
		language = "en"
	}

	return []string{
		ts.Format(timestampLayout),
		app.ProjectDescription,
		app.FirstName,
		app.EmailAddress,
		app.PhoneNumber,
		app.WebHosting,
		app.UTMSource,
		app.UTMMedium,
		app.UTMCampaign,
		app.UTMTerm,
		app.UTMContent,
		app.AffiliateID,
		device,
		meta.UserAgent,
		app.FBCLID,
		app.GCLID,
		language,
	}
}
