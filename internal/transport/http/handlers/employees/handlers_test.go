package employeeshandler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"empman/internal/domain/admin"
	"empman/internal/domain/employee"
	"empman/internal/platform/metrics"
	"empman/internal/transport/http/middleware"
)

const testSecret = "test-secret"

type memStore struct {
	rows []employee.Employee
}

func (m *memStore) sorted() []employee.Employee {
	out := make([]employee.Employee, len(m.rows))
	copy(out, m.rows)
	sort.SliceStable(out, func(i, j int) bool { return out[i].HireDate.Before(out[j].HireDate) })
	return out
}

func (m *memStore) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return m.sorted(), nil
}

func (m *memStore) FindByID(ctx context.Context, id int) (*employee.Employee, error) {
	for _, row := range m.rows {
		if row.ID == id {
			row := row
			return &row, nil
		}
	}
	return nil, employee.ErrNotFound
}

func (m *memStore) FindByName(ctx context.Context, term string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, row := range m.sorted() {
		if strings.Contains(row.Name, term) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *memStore) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	for _, row := range m.rows {
		if row.MailAddress == email {
			row := row
			return &row, nil
		}
	}
	return nil, employee.ErrNotFound
}

func (m *memStore) FindPage(ctx context.Context, pageNum, pageSize int) ([]employee.Employee, error) {
	sorted := m.sorted()
	offset := (pageNum - 1) * pageSize
	if offset >= len(sorted) {
		return []employee.Employee{}, nil
	}
	end := offset + pageSize
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[offset:end], nil
}

func (m *memStore) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	maxID := 0
	for _, row := range m.rows {
		if row.ID > maxID {
			maxID = row.ID
		}
	}
	emp.ID = maxID + 1
	m.rows = append(m.rows, emp)
	return emp, nil
}

func (m *memStore) UpdateDependents(ctx context.Context, id, count int) error {
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i].DependentsCount = count
			return nil
		}
	}
	return employee.ErrNotFound
}

func newTestRouter(t *testing.T, store *memStore) http.Handler {
	t.Helper()
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Auth(testSecret))
	handler := NewHandler(employee.NewService(store), metrics.New(), 10)
	router.Route("/api/v1", handler.RegisterRoutes)
	return router
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := admin.GenerateToken(testSecret, admin.Claims{AdminID: 1, Name: "Admin", Email: "admin@example.com"}, time.Hour)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}
	return token
}

func doRequest(t *testing.T, router http.Handler, req *http.Request, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	if authed {
		req.Header.Set("Authorization", "Bearer "+adminToken(t))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, rec.Body.String())
	}
	return envelope
}

func seedRows(n int) *memStore {
	store := &memStore{}
	for i := 1; i <= n; i++ {
		store.rows = append(store.rows, employee.Employee{
			ID:              i,
			Name:            fmt.Sprintf("Employee %02d", i),
			Image:           "data:image/png;base64,AA==",
			Gender:          "male",
			HireDate:        time.Date(2019, 6, i, 0, 0, 0, 0, time.UTC),
			MailAddress:     fmt.Sprintf("employee%02d@example.com", i),
			ZipCode:         "111-2222",
			Address:         "Nagoya",
			Telephone:       "052-123-4567",
			Salary:          200000,
			Characteristics: "calm",
			DependentsCount: 0,
		})
	}
	return store
}

func multipartInsert(t *testing.T, fields map[string]string, imageName string, imageBytes []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	if imageName != "" {
		part, err := writer.CreateFormFile("image", imageName)
		if err != nil {
			t.Fatalf("create image part: %v", err)
		}
		if _, err := part.Write(imageBytes); err != nil {
			t.Fatalf("write image part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/employees/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func validFields() map[string]string {
	return map[string]string{
		"name":            "Hanako Suzuki",
		"gender":          "female",
		"hireDate":        "2022-10-01",
		"mailAddress":     "hanako@example.com",
		"zipCode":         "456-7890",
		"address":         "Kyoto",
		"telephone":       "075-123-4567",
		"salary":          "320000",
		"characteristics": "organized",
		"dependentsCount": "1",
	}
}

func TestListRequiresAuth(t *testing.T) {
	router := newTestRouter(t, seedRows(1))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/", nil)
	rec := doRequest(t, router, req, false)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestListEmployees(t *testing.T) {
	router := newTestRouter(t, seedRows(3))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/", nil)
	rec := doRequest(t, router, req, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	if got := len(data["employees"].([]any)); got != 3 {
		t.Fatalf("expected 3 employees, got %d", got)
	}
	if data["noResults"].(bool) {
		t.Fatal("plain list must not set noResults")
	}
}

func TestSearchNoMatchesSetsFlagAndReturnsFullList(t *testing.T) {
	router := newTestRouter(t, seedRows(3))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/?name=Nobody", nil)
	rec := doRequest(t, router, req, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	if !data["noResults"].(bool) {
		t.Fatal("expected noResults flag")
	}
	if got := len(data["employees"].([]any)); got != 3 {
		t.Fatalf("expected fallback to full list of 3, got %d", got)
	}
}

func TestPaginatedList(t *testing.T) {
	router := newTestRouter(t, seedRows(15))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/?page=2", nil)
	rec := doRequest(t, router, req, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	if got := len(data["employees"].([]any)); got != 5 {
		t.Fatalf("expected 5 employees on page 2, got %d", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/employees/?page=0", nil)
	rec = doRequest(t, router, req, true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for page 0, got %d", rec.Code)
	}
}

func TestGetEmployeeDetail(t *testing.T) {
	router := newTestRouter(t, seedRows(2))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/2/", nil)
	rec := doRequest(t, router, req, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/employees/99/", nil)
	rec = doRequest(t, router, req, true)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestInsertEmployee(t *testing.T) {
	store := seedRows(2)
	router := newTestRouter(t, store)

	req := multipartInsert(t, validFields(), "portrait.png", []byte{0x89, 0x50, 0x4E, 0x47})
	rec := doRequest(t, router, req, true)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	if id := int(data["id"].(float64)); id != 3 {
		t.Fatalf("expected assigned id 3, got %d", id)
	}
	if image := data["image"].(string); !strings.HasPrefix(image, "data:image/png;base64,") {
		t.Fatalf("expected data URI image, got %q", image)
	}
	if len(store.rows) != 3 {
		t.Fatalf("expected 3 persisted rows, got %d", len(store.rows))
	}
}

func TestInsertEmployeeValidationFailure(t *testing.T) {
	store := seedRows(1)
	router := newTestRouter(t, store)

	fields := validFields()
	fields["salary"] = "900000"
	fields["zipCode"] = "bad"
	req := multipartInsert(t, fields, "portrait.png", []byte{0x89})
	rec := doRequest(t, router, req, true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	envelope := decodeEnvelope(t, rec)
	errObj := envelope["error"].(map[string]any)
	if errObj["code"].(string) != "validation_error" {
		t.Fatalf("expected validation_error, got %v", errObj["code"])
	}
	details := errObj["details"].(map[string]any)
	issues := details["fields"].([]any)
	if len(issues) != 2 {
		t.Fatalf("expected 2 field issues, got %d: %v", len(issues), issues)
	}
	submitted := details["submitted"].(map[string]any)
	if submitted["salary"].(string) != "900000" {
		t.Fatal("submitted values must be echoed for re-rendering")
	}
	if len(store.rows) != 1 {
		t.Fatal("rejected submission must not persist")
	}
}

func TestInsertEmployeeMissingUpload(t *testing.T) {
	router := newTestRouter(t, seedRows(0))

	req := multipartInsert(t, validFields(), "", nil)
	rec := doRequest(t, router, req, true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUpdateDependents(t *testing.T) {
	store := seedRows(1)
	router := newTestRouter(t, store)

	body := bytes.NewBufferString(`{"dependentsCount": 3}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/employees/1/dependents", body)
	rec := doRequest(t, router, req, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if store.rows[0].DependentsCount != 3 {
		t.Fatalf("expected dependents count 3, got %d", store.rows[0].DependentsCount)
	}

	body = bytes.NewBufferString(`{"dependentsCount": 3}`)
	req = httptest.NewRequest(http.MethodPatch, "/api/v1/employees/42/dependents", body)
	rec = doRequest(t, router, req, true)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", rec.Code)
	}
}

func TestExportPDF(t *testing.T) {
	router := newTestRouter(t, seedRows(2))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/export/pdf", nil)
	rec := doRequest(t, router, req, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Fatal("response body is not a PDF document")
	}
}
