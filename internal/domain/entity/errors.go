package entity

import (
	"errors"
	"strings"
)

var (
	ErrNameIsRequired        = errors.New("name is required")
	ErrDescriptionIsRequired = errors.New("description is required")
	ErrParentIsRequired      = errors.New("parent id is required")
)

const (
	RuleRequired       = "required"
	RuleLength         = "length"
	RulePattern        = "pattern"
	RuleReference      = "reference"
	RuleNotEmptyGroup  = "NotEmptyGroup"
	RuleNotEmptyCourse = "NotEmptyCourse"
)

// Violation is a single broken rule on a single field.
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
	cause   error
}

// ValidationError is returned when a write is rejected before anything is staged.
type ValidationError struct {
	Violations []Violation `json:"violations"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.Field + ": " + v.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap exposes the sentinel errors behind the violations to errors.Is.
func (e *ValidationError) Unwrap() []error {
	var errs []error
	for _, v := range e.Violations {
		if v.cause != nil {
			errs = append(errs, v.cause)
		}
	}
	return errs
}

// HasRule reports whether any violation carries the given rule.
func (e *ValidationError) HasRule(rule string) bool {
	for _, v := range e.Violations {
		if v.Rule == rule {
			return true
		}
	}
	return false
}

// NewRuleViolation builds a single-violation error for rules that are not tied to
// a field value, like the deletion guards.
func NewRuleViolation(field, rule, message string) *ValidationError {
	return &ValidationError{Violations: []Violation{{Field: field, Rule: rule, Message: message}}}
}

type violations []Violation

func (vs *violations) add(field, rule, message string, cause error) {
	*vs = append(*vs, Violation{Field: field, Rule: rule, Message: message, cause: cause})
}

func (vs violations) err() error {
	if len(vs) == 0 {
		return nil
	}
	return &ValidationError{Violations: vs}
}
