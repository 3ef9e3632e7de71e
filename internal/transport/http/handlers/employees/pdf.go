package employeeshandler

import (
	"fmt"
	"net/http"

	"github.com/jung-kurt/gofpdf"

	"empman/internal/transport/http/api"
	"empman/internal/transport/http/middleware"
)

// handleExportPDF renders the full roster as a PDF table, in the same
// hire-date order the list endpoint uses.
func (h *Handler) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	list, err := h.Service.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_export_failed", "failed to export employees", requestID)
		return
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(60, 10, "Employee Roster")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 9)
	widths := []float64{12, 50, 26, 60, 24, 24, 20}
	headers := []string{"ID", "Name", "Hire Date", "Mail Address", "Telephone", "Salary", "Dependents"}
	for i, head := range headers {
		pdf.CellFormat(widths[i], 7, head, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, emp := range list {
		cells := []string{
			fmt.Sprintf("%d", emp.ID),
			emp.Name,
			emp.HireDate.Format("2006-01-02"),
			emp.MailAddress,
			emp.Telephone,
			fmt.Sprintf("%d", emp.Salary),
			fmt.Sprintf("%d", emp.DependentsCount),
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="employees.pdf"`)
	if err := pdf.Output(w); err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_export_failed", "failed to render pdf", requestID)
	}
}
