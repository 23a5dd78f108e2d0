package library

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report JSON names so messages match what the backend sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// A zero Timestamp counts as missing for "required".
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		ts, ok := field.Interface().(Timestamp)
		if !ok || ts.IsZero() {
			return nil
		}
		return ts.Time
	}, Timestamp{})

	return v
}

// ValidateBook checks a catalog entry against its invariants.
func ValidateBook(b BookRecord) error {
	if err := validate.Struct(b); err != nil {
		return recordError("book", b.ID, err)
	}
	return nil
}

// ValidateLoan checks a loan against its invariants.
func ValidateLoan(l LoanRecord) error {
	if err := validate.Struct(l); err != nil {
		return recordError("loan", l.ID, err)
	}
	if l.DueDate.Before(l.BorrowDate.Time) {
		return &RecordError{Kind: "loan", ID: l.ID, Field: "dueDate", Reason: "is before borrowDate"}
	}
	return nil
}

func recordError(kind string, id int64, err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &RecordError{Kind: kind, ID: id, Reason: err.Error()}
	}
	fe := fieldErrs[0]
	return &RecordError{Kind: kind, ID: id, Field: fe.Field(), Reason: friendlyMessage(fe)}
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", e.Param())
		}
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", e.Param())
		}
		return fmt.Sprintf("must be at most %s", e.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param())
	case "gte":
		return fmt.Sprintf("must be %s or more", e.Param())
	case "gtefield":
		return fmt.Sprintf("must not be less than %s", e.Param())
	case "eqfield":
		return fmt.Sprintf("must match %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", e.Param())
	default:
		return fmt.Sprintf("failed %s validation", e.Tag())
	}
}

// FormError lists every rejected field of a form, keyed by JSON name.
type FormError struct {
	Fields map[string]string
}

func (e *FormError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return strings.Join(parts, "; ")
}

// ValidateForm runs struct-tag validation on a request form.
func ValidateForm(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	fe := &FormError{Fields: make(map[string]string, len(fieldErrs))}
	for _, e := range fieldErrs {
		fe.Fields[e.Field()] = friendlyMessage(e)
	}
	return fe
}
