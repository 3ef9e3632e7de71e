package employee

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"
)

// Service wraps the store with the insertion workflow and the read paths.
//
// Insertions are serialized through insertMu so at most one "read max id,
// compose row, write row" sequence runs at a time in this process. That keeps
// assigned ids contiguous for a single-instance deployment; running several
// instances against one database needs an auto-incrementing key and a unique
// constraint on mail_address instead.
type Service struct {
	store    StoreAPI
	insertMu sync.Mutex
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

// List returns every employee ordered by hire date. An empty table yields an
// empty list, not an error.
func (s *Service) List(ctx context.Context) ([]Employee, error) {
	return s.store.FindAll(ctx)
}

// Detail returns one employee or ErrNotFound.
func (s *Service) Detail(ctx context.Context, id int) (*Employee, error) {
	return s.store.FindByID(ctx, id)
}

// Search matches names by case-sensitive substring. An empty term degenerates
// to List. When nothing matches, the full list is returned with noResults set
// so the caller can show an informational message instead of an empty page.
func (s *Service) Search(ctx context.Context, term string) (list []Employee, noResults bool, err error) {
	if term == "" {
		list, err = s.store.FindAll(ctx)
		return list, false, err
	}
	list, err = s.store.FindByName(ctx, term)
	if err != nil {
		return nil, false, err
	}
	if len(list) == 0 {
		list, err = s.store.FindAll(ctx)
		return list, true, err
	}
	return list, false, nil
}

// Page returns up to pageSize employees for a 1-based page number.
func (s *Service) Page(ctx context.Context, pageNum, pageSize int) ([]Employee, error) {
	if pageNum < 1 {
		return nil, ErrInvalidPage
	}
	return s.store.FindPage(ctx, pageNum, pageSize)
}

// UpdateDependents overwrites only the dependents count column. An absent id
// reports ErrNotFound.
func (s *Service) UpdateDependents(ctx context.Context, id, count int) error {
	if count < 0 {
		return &ValidationError{Issues: []FieldIssue{{Field: "dependentsCount", Reason: "dependents count must be numeric"}}}
	}
	return s.store.UpdateDependents(ctx, id, count)
}

// Insert runs the whole insertion workflow: field validation, the one
// side-effecting duplicate-email lookup, id assignment, image ingestion and
// the write. It returns a *ValidationError when the submission is rejected;
// any other failure leaves nothing persisted.
func (s *Service) Insert(ctx context.Context, form InsertForm, image []byte) (*Employee, error) {
	issues := form.Validate()
	if len(image) == 0 && !hasIssue(issues, "image") {
		issues = append(issues, FieldIssue{Field: "image", Reason: "image upload is required"})
	}

	// The duplicate check runs exactly once, here; a syntactically bad email
	// cannot be a duplicate so the lookup is skipped for it.
	if !hasIssue(issues, "mailAddress") {
		_, err := s.store.FindByEmail(ctx, form.MailAddress)
		switch {
		case err == nil:
			issues = append(issues, FieldIssue{Field: "mailAddress", Reason: "mail address is already registered"})
		case !errors.Is(err, ErrNotFound):
			return nil, fmt.Errorf("duplicate email check: %w", err)
		}
	}

	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}

	emp, err := s.compose(form, image)
	if err != nil {
		return nil, err
	}

	s.insertMu.Lock()
	defer s.insertMu.Unlock()

	created, err := s.store.Create(ctx, emp)
	if err != nil {
		return nil, fmt.Errorf("insert employee: %w", err)
	}
	return &created, nil
}

// compose converts a validated form into a persistable row. Field conversions
// cannot fail past validation; image ingestion still can, and a failure there
// aborts the insertion rather than persisting a half-imaged record.
func (s *Service) compose(form InsertForm, image []byte) (Employee, error) {
	dataURI, err := EncodeImage(image, form.Image)
	if err != nil {
		return Employee{}, fmt.Errorf("image ingestion: %w", err)
	}

	hireDate, err := time.Parse("2006-01-02", form.HireDate)
	if err != nil {
		return Employee{}, fmt.Errorf("parse hire date: %w", err)
	}
	salary, _ := strconv.Atoi(form.Salary)
	dependents, _ := strconv.Atoi(form.DependentsCount)

	return Employee{
		Name:            form.Name,
		Image:           dataURI,
		Gender:          form.Gender,
		HireDate:        hireDate,
		MailAddress:     form.MailAddress,
		ZipCode:         form.ZipCode,
		Address:         form.Address,
		Telephone:       form.NormalizedTelephone(),
		Salary:          salary,
		Characteristics: form.Characteristics,
		DependentsCount: dependents,
	}, nil
}
