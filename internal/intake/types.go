// Package intake defines the submission domain: the typed payload decoded at
// the HTTP boundary, its validation rules, the projection to a spreadsheet
// row, and the pipeline that carries one submission from validation to the
// destination store.
package intake

import (
	"context"
	"time"
)

// Application holds the applicant-entered form fields. FirstName,
// EmailAddress and ProjectDescription are required; everything else is
// optional tracking or contact detail.
type Application struct {
	FirstName          string `json:"first_name"`
	EmailAddress       string `json:"email_address"`
	ProjectDescription string `json:"project_description"`
	PhoneNumber        string `json:"phone_number"`
	WebHosting         string `json:"web_hosting"`
	UTMSource          string `json:"utm_source"`
	UTMMedium          string `json:"utm_medium"`
	UTMCampaign        string `json:"utm_campaign"`
	UTMTerm            string `json:"utm_term"`
	UTMContent         string `json:"utm_content"`
	AffiliateID        string `json:"affiliate_id"`
	FBCLID             string `json:"fbclid"`
	GCLID              string `json:"gclid"`
	Language           string `json:"language"`
}

// Metadata describes the submitting client, captured by the form frontend.
// Field names follow the frontend's camelCase wire format.
type Metadata struct {
	Mobile         bool   `json:"mobile"`
	UserAgent      string `json:"userAgent"`
	Browser        string `json:"browser"`
	BrowserVersion string `json:"browserVersion"`
	OS             string `json:"os"`
	Referrer       string `json:"referrer"`
	ScreenWidth    int    `json:"screenWidth"`
	ScreenHeight   int    `json:"screenHeight"`
	Language       string `json:"language"`
	Online         bool   `json:"online"`
}

// Submission is one decoded request body. Application is nil when the
// payload carried no application object at all.
type Submission struct {
	Application *Application `json:"application"`
	Metadata    *Metadata    `json:"metadata"`
}

// Clock supplies timestamps for row generation and response bodies.
type Clock interface {
	Now() time.Time
}

// Store is the destination the pipeline appends accepted rows to.
type Store interface {
	Append(ctx context.Context, row []string) (updatedRange string, err error)
	Probe(ctx context.Context) error
}

// ConnectFunc builds and verifies a Store: it normalizes the credential,
// dials the remote API and probes reachability. It must be safe to call
// concurrently.
type ConnectFunc func(ctx context.Context) (Store, error)
