package html

// ChromeClass is a typed identifier for the semantic CSS classes templates
// emit.
type ChromeClass string

const (
	ClassPage         ChromeClass = "regform-page"
	ClassForm         ChromeClass = "regform-form"
	ClassHeader       ChromeClass = "regform-header"
	ClassField        ChromeClass = "regform-field"
	ClassFieldInvalid ChromeClass = "regform-field--invalid"
	ClassError        ChromeClass = "regform-error"
	ClassErrors       ChromeClass = "regform-errors"
	ClassActions      ChromeClass = "regform-actions"
	ClassConfirmation ChromeClass = "regform-confirmation"
)

func chromeClasses() map[string]string {
	return map[string]string{
		"page":         string(ClassPage),
		"form":         string(ClassForm),
		"header":       string(ClassHeader),
		"field":        string(ClassField),
		"fieldInvalid": string(ClassFieldInvalid),
		"error":        string(ClassError),
		"errors":       string(ClassErrors),
		"actions":      string(ClassActions),
		"confirmation": string(ClassConfirmation),
	}
}
