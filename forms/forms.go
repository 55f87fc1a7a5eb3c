// Package forms is the client-side validation gate: declarative field
// rules evaluated on every change, and the dirty-and-valid-and-not-pending
// check that enables a form's submit control. A form that fails the gate
// never reaches the network.
package forms

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Rule validates a single field value and returns a user-facing message
// on violation.
type Rule func(value string) error

// ValidationError is a client-side schema violation for one field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Required fails on an empty value.
func Required(message string) Rule {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s", message)
		}
		return nil
	}
}

// MinLen fails when the value is shorter than n characters.
func MinLen(n int, message string) Rule {
	return func(value string) error {
		if utf8.RuneCountInString(value) < n {
			return fmt.Errorf("%s", message)
		}
		return nil
	}
}

// EmailShape fails when the value does not parse as an address.
func EmailShape(message string) Rule {
	return func(value string) error {
		if value == "" {
			return fmt.Errorf("%s", message)
		}
		if _, err := mail.ParseAddress(value); err != nil {
			return fmt.Errorf("%s", message)
		}
		return nil
	}
}

// Field is one declared form field.
type Field struct {
	Name  string
	Rules []Rule
}

// Equality is a cross-field constraint, e.g. password confirmation. The
// violation is reported against the second field.
type Equality struct {
	A, B    string
	Message string
}

// Schema declares a form's constraints.
type Schema struct {
	Fields []Field
	Equal  []Equality
}

// Validate runs every rule against values and returns all violations in
// declaration order. An empty result means the form is valid.
func (s Schema) Validate(values map[string]string) []ValidationError {
	var errs []ValidationError
	for _, f := range s.Fields {
		for _, rule := range f.Rules {
			if err := rule(values[f.Name]); err != nil {
				errs = append(errs, ValidationError{Field: f.Name, Message: err.Error()})
				break
			}
		}
	}
	for _, eq := range s.Equal {
		if values[eq.A] != values[eq.B] {
			errs = append(errs, ValidationError{Field: eq.B, Message: eq.Message})
		}
	}
	return errs
}

// Valid reports whether values satisfy the schema.
func (s Schema) Valid(values map[string]string) bool {
	return len(s.Validate(values)) == 0
}

// Dirty reports whether any field differs from its last-saved value.
// Update-style forms stay inert while nothing changed.
func Dirty(values, saved map[string]string) bool {
	for k, v := range values {
		if saved[k] != v {
			return true
		}
	}
	for k, v := range saved {
		if _, ok := values[k]; !ok && v != "" {
			return true
		}
	}
	return false
}

// CanSubmit gates the submit control: enabled only while the form is
// dirty, valid, and no submission is pending.
func CanSubmit(dirty, valid, pending bool) bool {
	return dirty && valid && !pending
}
