package validation

import "github.com/goliatone/go-regform/pkg/submission"

// ProgramPlaceholder is the label of the empty program option.
const ProgramPlaceholder = "Select a Program"

// FullName requires letters and whitespace only.
func FullName() FieldSpec {
	return FieldSpec{
		Name:            submission.FieldFullName,
		Label:           "Full Name",
		Required:        true,
		RequiredMessage: "Full Name is required.",
		Rules:           []Rule{Letters()},
	}
}

// EmailAddress requires a local@domain.tld shaped value.
func EmailAddress() FieldSpec {
	return FieldSpec{
		Name:            submission.FieldEmail,
		Label:           "Email Address",
		Required:        true,
		RequiredMessage: "Email Address is required.",
		Rules:           []Rule{Email()},
	}
}

// Program requires a chosen program code.
func Program() FieldSpec {
	return FieldSpec{
		Name:            submission.FieldProgram,
		Label:           "Program",
		Required:        true,
		RequiredMessage: "Please select a program.",
		Placeholders:    []string{ProgramPlaceholder},
	}
}

// PhoneNumber requires a 7 to 15 digit number once normalised.
func PhoneNumber() FieldSpec {
	return FieldSpec{
		Name:            submission.FieldPhone,
		Label:           "Phone Number",
		Required:        true,
		RequiredMessage: "Phone Number is required.",
		Rules:           []Rule{Phone()},
	}
}

// Percent is an optional score in [0, 100].
func Percent(name, label string) FieldSpec {
	return FieldSpec{
		Name:  name,
		Label: label,
		Rules: []Rule{Percentage().WithMessage(label + " must be a number between 0 and 100.")},
	}
}

// Bio is an optional free-text field capped at MaxBioLength characters.
func Bio() FieldSpec {
	return FieldSpec{
		Name:  submission.FieldBio,
		Label: "Short Bio",
		Rules: []Rule{MaxLength(MaxBioLength).WithMessage("Bio must be 500 characters or fewer.")},
	}
}

// CETNumber requires the entrance exam number.
func CETNumber() FieldSpec {
	return FieldSpec{
		Name:            submission.FieldCETNumber,
		Label:           "CET Number",
		Required:        true,
		RequiredMessage: "CET Number is required.",
	}
}

// Basic is the field set of the plain registration form.
func Basic() []FieldSpec {
	return []FieldSpec{FullName(), EmailAddress(), Program()}
}
