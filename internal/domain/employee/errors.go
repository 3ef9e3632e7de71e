package employee

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound    = errors.New("employee not found")
	ErrInvalidPage = errors.New("page number must be 1 or greater")
)

// FieldIssue describes why one submitted value was rejected.
type FieldIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError carries every field issue found in a submission, in the
// order the fields were checked.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("submission rejected with %d field issue(s)", len(e.Issues))
}
