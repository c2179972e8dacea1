package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound         = errors.New("project not found")
	ErrFileNotFound     = errors.New("file not found")
	ErrFileTooLarge     = errors.New("file exceeds the maximum allowed size")
	ErrUnsupportedType  = errors.New("unsupported file type")
	ErrInvalidCategory  = errors.New("invalid file category")
	ErrInvalidStep      = errors.New("invalid step number")
	ErrAlreadyCompleted = errors.New("project is already completed")
)

// FieldViolation names one violated constraint.
type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError carries every violated field of a step submission so
// the client can surface all of them at once.
type ValidationError struct {
	Step   int              `json:"step"`
	Fields []FieldViolation `json:"fields"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("step %d: invalid payload", e.Step)
	}
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return fmt.Sprintf("step %d: invalid fields: %s", e.Step, strings.Join(names, ", "))
}
