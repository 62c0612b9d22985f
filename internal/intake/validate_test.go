package intake

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validApplication() *Application {
	return &Application{
		FirstName:          "Ann",
		EmailAddress:       "ann@x.com",
		ProjectDescription: "site",
	}
}

func TestValidateAcceptsRequiredFields(t *testing.T) {
	t.Parallel()

	require.Empty(t, Validate(Submission{Application: validApplication()}))
}

func TestValidateMissingApplication(t *testing.T) {
	t.Parallel()

	errs := Validate(Submission{})
	require.Equal(t, []string{ErrApplicationRequired}, errs)
}

func TestValidateReportsAllViolationsInOrder(t *testing.T) {
	t.Parallel()

	errs := Validate(Submission{Application: &Application{}})
	require.Equal(t, []string{
		"first name is required",
		"email address is required",
		"project description is required",
	}, errs)
}

func TestValidateBlankFieldsAfterTrimming(t *testing.T) {
	t.Parallel()

	app := &Application{FirstName: "   ", EmailAddress: "ann@x.com", ProjectDescription: "\t\n"}
	errs := Validate(Submission{Application: app})
	require.Equal(t, []string{
		"first name is required",
		"project description is required",
	}, errs)
}

func TestValidateEmailFormat(t *testing.T) {
	t.Parallel()

	valid := []string{"a@b.com", "foo.bar@baz.co"}
	for _, email := range valid {
		app := validApplication()
		app.EmailAddress = email
		require.Emptyf(t, Validate(Submission{Application: app}), "expected %q to be valid", email)
	}

	invalid := []string{"not-an-email", "a@b", "@b.com", "a b@c.com"}
	for _, email := range invalid {
		app := validApplication()
		app.EmailAddress = email
		errs := Validate(Submission{Application: app})
		require.Equalf(t, []string{"invalid email address format"}, errs, "email %q", email)
	}
}
