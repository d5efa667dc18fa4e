package tools

import (
	"fmt"
	"slices"

	"github.com/baalimago/plai/internal/models"
)

// LLMTool is implemented by every tool the model can call
type LLMTool interface {
	// Call the tool with the given Input. Returns output from the tool or an error
	// if the call returned an error-like. An error-like is either exit code non-zero or
	// restful response non 2xx.
	Call(models.Input) (string, error)

	// Specification returns the function specification which completers
	// send along to the model
	Specification() models.Specification
}

type ValidationError struct {
	fieldsMissing []string
}

func NewValidationError(fieldsMissing []string) error {
	// Sort for deterministic error print
	slices.Sort(fieldsMissing)
	return ValidationError{fieldsMissing: fieldsMissing}
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("validation error, fields missing: %v", v.fieldsMissing)
}
