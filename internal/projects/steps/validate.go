package steps

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tongcompany/intake-portal/internal/projects/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report violations under their json names so clients see the
	// same paths they submitted ("hosting.provider", not
	// "Hosting.Provider").
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Priority is mandatory for MX records and meaningless otherwise.
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		rec := sl.Current().Interface().(domain.MailRecord)
		if rec.Type == domain.RecordTypeMX && rec.Priority == nil {
			sl.ReportError(rec.Priority, "priority", "Priority", "required_for_mx", "")
		}
	}, domain.MailRecord{})

	return v
}

// Decode parses and validates a raw step payload. On success it
// returns the typed payload for that step; on failure a
// *domain.ValidationError enumerating every violated field.
func Decode(step int, raw []byte) (domain.StepPayload, error) {
	if !Valid(step) {
		return nil, domain.ErrInvalidStep
	}

	var payload domain.StepPayload
	switch step {
	case 1:
		payload = &domain.Step1Data{}
	case 2:
		payload = &domain.Step2Data{}
	case 3:
		payload = &domain.Step3Data{}
	case 4:
		payload = &domain.Step4Data{}
	case 5:
		payload = &domain.Step5Data{}
	case 6:
		payload = &domain.Step6Data{}
	case 7:
		payload = &domain.Step7Data{}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(payload); err != nil {
		return nil, &domain.ValidationError{
			Step:   step,
			Fields: []domain.FieldViolation{{Field: "payload", Reason: fmt.Sprintf("malformed JSON: %v", err)}},
		}
	}

	if err := validate.Struct(payload); err != nil {
		invalid, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil, err
		}
		verr := &domain.ValidationError{Step: step}
		for _, fe := range invalid {
			verr.Fields = append(verr.Fields, domain.FieldViolation{
				Field:  fieldPath(fe.Namespace()),
				Reason: reason(fe),
			})
		}
		return nil, verr
	}

	return payload, nil
}

// fieldPath strips the root struct name from a validator namespace:
// "Step2Data.hosting.provider" -> "hosting.provider".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_for_mx":
		return "is required for MX records"
	case "email":
		return "must be a valid email address"
	case "min":
		switch fe.Kind() {
		case reflect.Slice, reflect.Map, reflect.Array:
			return fmt.Sprintf("must contain at least %s entries", fe.Param())
		default:
			return fmt.Sprintf("must be at least %s characters long", fe.Param())
		}
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
