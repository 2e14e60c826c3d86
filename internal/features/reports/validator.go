package reports

import (
	"strings"

	"github.com/xyz-asif/foundit/internal/features/identity"
	"github.com/xyz-asif/foundit/internal/pkg/validator"
	apperrors "github.com/xyz-asif/foundit/pkg/errors"
)

// MissingFields returns the required fields of form that are blank after trimming
func MissingFields(form SubmitForm) []string {
	return validator.Required(
		validator.Field{Name: "itemName", Value: form.ItemName},
		validator.Field{Name: "foundLocation", Value: form.FoundLocation},
		validator.Field{Name: "retrieveLocation", Value: form.RetrieveLocation},
	)
}

// Validate returns a ValidationFailed error naming every blank required field
func Validate(form SubmitForm) error {
	if missing := MissingFields(form); len(missing) > 0 {
		return apperrors.Validation("reports.Validate", missing)
	}
	return nil
}

// ReporterName picks display name, then contact address, then AnonymousReporter
func ReporterName(id *identity.Identity) string {
	if id == nil {
		return AnonymousReporter
	}
	if name := strings.TrimSpace(id.DisplayName); name != "" {
		return name
	}
	if addr := strings.TrimSpace(id.ContactAddress); addr != "" {
		return addr
	}
	return AnonymousReporter
}

func normalize(form SubmitForm) SubmitForm {
	return SubmitForm{
		ItemName:         strings.TrimSpace(form.ItemName),
		FoundLocation:    strings.TrimSpace(form.FoundLocation),
		RetrieveLocation: strings.TrimSpace(form.RetrieveLocation),
		Details:          strings.TrimSpace(form.Details),
	}
}
