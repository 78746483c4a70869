// File path: internal/report/decode.go
package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	ErrEmpty     = errors.New("empty response from AI model")
	ErrMalformed = errors.New("response is not valid JSON")
	ErrInvalid   = errors.New("response does not match the audit report shape")
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// ValidationError lists every field that failed validation, using JSON paths
// such as "fix_list[0].summary".
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalid, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

// Decode parses an untrusted model response into an AuditReport and checks it
// against the declared shape before handing it out.
func Decode(data []byte) (*AuditReport, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmpty
	}
	var rep AuditReport
	if err := json.Unmarshal(trimmed, &rep); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := Validate(&rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

// Validate checks the struct tags on rep.
func Validate(rep *AuditReport) error {
	if rep == nil {
		return &ValidationError{Problems: []string{"report is null"}}
	}
	err := validatorInstance().Struct(rep)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, describe(fe))
	}
	return &ValidationError{Problems: problems}
}

func describe(fe validator.FieldError) string {
	path := strings.TrimPrefix(fe.Namespace(), "AuditReport.")
	switch fe.Tag() {
	case "required":
		return path + " is required"
	case "gte", "lte":
		return fmt.Sprintf("%s must be %s %s, got %v", path, fe.Tag(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", path, fe.Tag())
	}
}
