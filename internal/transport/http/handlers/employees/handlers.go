package employeeshandler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"empman/internal/domain/employee"
	"empman/internal/platform/metrics"
	"empman/internal/transport/http/api"
	"empman/internal/transport/http/middleware"
	"empman/internal/transport/http/shared"
)

const multipartMemoryLimit = 8 << 20

type Handler struct {
	Service  *employee.Service
	Metrics  *metrics.Collector
	PageSize int
}

func NewHandler(service *employee.Service, collector *metrics.Collector, pageSize int) *Handler {
	return &Handler{Service: service, Metrics: collector, PageSize: pageSize}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Get("/", h.handleList)
		r.Post("/", h.handleInsert)
		r.Get("/export/pdf", h.handleExportPDF)
		r.Route("/{employeeID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Patch("/dependents", h.handleUpdateDependents)
		})
	})
}

type listResponse struct {
	Employees []employee.Employee `json:"employees"`
	NoResults bool                `json:"noResults"`
}

// handleList serves the list, search and paginated variants of the roster.
// A zero-match search falls back to the full list with noResults set, so the
// client shows an informational message instead of an empty page.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	if page, ok := shared.ParsePageNumber(r); ok {
		list, err := h.Service.Page(r.Context(), page, h.PageSize)
		if errors.Is(err, employee.ErrInvalidPage) {
			api.Fail(w, http.StatusBadRequest, "invalid_page", "page number must be 1 or greater", requestID)
			return
		}
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", requestID)
			return
		}
		api.Success(w, listResponse{Employees: list}, requestID)
		return
	}

	if r.URL.Query().Has("name") {
		list, noResults, err := h.Service.Search(r.Context(), r.URL.Query().Get("name"))
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "employee_search_failed", "failed to search employees", requestID)
			return
		}
		api.Success(w, listResponse{Employees: list, NoResults: noResults}, requestID)
		return
	}

	list, err := h.Service.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", requestID)
		return
	}
	api.Success(w, listResponse{Employees: list}, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "employee id must be an integer", requestID)
		return
	}

	emp, err := h.Service.Detail(r.Context(), id)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_detail_failed", "failed to load employee", requestID)
		return
	}
	api.Success(w, emp, requestID)
}

// handleInsert accepts the multipart submission: the text fields plus an
// optional "image" file part. The upload is the one adapter-level concern;
// everything past bytes+filename belongs to the service.
func (h *Handler) handleInsert(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid multipart form", requestID)
		return
	}

	form := employee.InsertForm{
		Name:            r.FormValue("name"),
		Image:           r.FormValue("image"),
		Gender:          r.FormValue("gender"),
		HireDate:        r.FormValue("hireDate"),
		MailAddress:     r.FormValue("mailAddress"),
		ZipCode:         r.FormValue("zipCode"),
		Address:         r.FormValue("address"),
		Telephone:       r.FormValue("telephone"),
		Salary:          r.FormValue("salary"),
		Characteristics: r.FormValue("characteristics"),
		DependentsCount: r.FormValue("dependentsCount"),
	}

	var imageBytes []byte
	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()
		imageBytes, err = io.ReadAll(file)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "image_read_failed", "failed to read image upload", requestID)
			return
		}
		form.Image = header.Filename
	} else if !errors.Is(err, http.ErrMissingFile) {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid image upload", requestID)
		return
	}

	emp, err := h.Service.Insert(r.Context(), form, imageBytes)
	var validationErr *employee.ValidationError
	if errors.As(err, &validationErr) {
		shared.FailValidation(w, requestID, validationErr.Issues, form)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_insert_failed", "failed to insert employee", requestID)
		return
	}

	if h.Metrics != nil {
		h.Metrics.RecordInsert()
	}
	api.Created(w, emp, requestID)
}

type updateDependentsRequest struct {
	DependentsCount *int `json:"dependentsCount"`
}

func (h *Handler) handleUpdateDependents(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "employee id must be an integer", requestID)
		return
	}

	var payload updateDependentsRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.DependentsCount == nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "dependentsCount is required", requestID)
		return
	}

	err = h.Service.UpdateDependents(r.Context(), id, *payload.DependentsCount)
	var validationErr *employee.ValidationError
	if errors.As(err, &validationErr) {
		shared.FailValidation(w, requestID, validationErr.Issues, payload)
		return
	}
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_update_failed", "failed to update employee", requestID)
		return
	}
	api.Success(w, map[string]int{"id": id}, requestID)
}
