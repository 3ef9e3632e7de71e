package shared

import (
	"net/http"

	"empman/internal/domain/employee"
	"empman/internal/transport/http/api"
)

// FailValidation writes the rejected-submission response: the per-field issues
// plus the original submitted values, so the client can re-render the form
// with the input preserved.
func FailValidation(w http.ResponseWriter, requestID string, issues []employee.FieldIssue, submitted any) {
	details := map[string]any{"fields": issues}
	if submitted != nil {
		details["submitted"] = submitted
	}
	api.FailWithDetails(
		w,
		http.StatusBadRequest,
		"validation_error",
		"submission validation failed",
		details,
		requestID,
	)
}
