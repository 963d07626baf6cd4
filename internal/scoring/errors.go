package scoring

import (
	"errors"
	"fmt"

	"github.com/forgo/shepherd/api/internal/model"
)

var (
	ErrIncompleteAnswers  = errors.New("incomplete answers")
	ErrInvalidCardinality = errors.New("invalid selection count")
	ErrInvalidAnswer      = errors.New("invalid answer")
	ErrUnknownTestType    = errors.New("unknown test type")
)

// AnswerError describes why a submission was rejected
type AnswerError struct {
	TestType model.TestType
	Field    string
	Message  string
	Err      error
}

func (e *AnswerError) Error() string {
	return fmt.Sprintf("%s: %s: %s: %v", e.TestType, e.Field, e.Message, e.Err)
}

func (e *AnswerError) Unwrap() error {
	return e.Err
}

func incomplete(t model.TestType, field, format string, args ...any) error {
	return &AnswerError{TestType: t, Field: field, Message: fmt.Sprintf(format, args...), Err: ErrIncompleteAnswers}
}

func invalid(t model.TestType, field, format string, args ...any) error {
	return &AnswerError{TestType: t, Field: field, Message: fmt.Sprintf(format, args...), Err: ErrInvalidAnswer}
}

func cardinality(t model.TestType, field string, want, got int) error {
	return &AnswerError{
		TestType: t,
		Field:    field,
		Message:  fmt.Sprintf("must have exactly %d entries, got %d", want, got),
		Err:      ErrInvalidCardinality,
	}
}
