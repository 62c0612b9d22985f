package intake

import (
	"regexp"
	"strings"
)

// ErrApplicationRequired is the single error reported when the payload
// carries no application object; the field rules are not evaluated then.
const ErrApplicationRequired = "application data is required"

// Field error messages, reported together in a fixed order.
const (
	errFirstNameRequired   = "first name is required"
	errEmailRequired       = "email address is required"
	errEmailFormat         = "invalid email address format"
	errDescriptionRequired = "project description is required"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks a decoded submission and returns the list of violations,
// empty when the submission is acceptable. All field rules are evaluated so
// every problem is reported at once, always in the same order: first name,
// email, project description.
func Validate(sub Submission) []string {
	if sub.Application == nil {
		return []string{ErrApplicationRequired}
	}

	app := sub.Application
	var errs []string

	if strings.TrimSpace(app.FirstName) == "" {
		errs = append(errs, errFirstNameRequired)
	}

	email := strings.TrimSpace(app.EmailAddress)
	switch {
	case email == "":
		errs = append(errs, errEmailRequired)
	case !emailPattern.MatchString(email):
		errs = append(errs, errEmailFormat)
	}

	if strings.TrimSpace(app.ProjectDescription) == "" {
		errs = append(errs, errDescriptionRequired)
	}

	return errs
}
