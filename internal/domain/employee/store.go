package employee

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const employeeColumns = `id, name, image, gender, hire_date, mail_address, zip_code, address, telephone, salary, characteristics, dependents_count`

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) FindAll(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    ORDER BY hire_date
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEmployees(rows)
}

func (s *Store) FindByID(ctx context.Context, id int) (*Employee, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE id = $1
  `, id)

	emp, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return emp, nil
}

func (s *Store) FindByName(ctx context.Context, term string) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE name LIKE $1
    ORDER BY hire_date
  `, "%"+term+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEmployees(rows)
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE mail_address = $1
  `, email)

	emp, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return emp, nil
}

func (s *Store) FindPage(ctx context.Context, pageNum, pageSize int) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    ORDER BY hire_date
    LIMIT $1 OFFSET $2
  `, pageSize, (pageNum-1)*pageSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEmployees(rows)
}

// Create assigns the next id and inserts the row in one transaction, so the
// read-max-id-then-insert sequence cannot interleave with a concurrent writer
// on the same pool.
func (s *Store) Create(ctx context.Context, emp Employee) (Employee, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Employee{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var maxID int
	if err := tx.QueryRow(ctx, "SELECT COALESCE(MAX(id), 0) FROM employees").Scan(&maxID); err != nil {
		return Employee{}, err
	}
	emp.ID = maxID + 1

	if _, err := tx.Exec(ctx, `
    INSERT INTO employees (id, name, image, gender, hire_date, mail_address, zip_code, address, telephone, salary, characteristics, dependents_count)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
  `,
		emp.ID, emp.Name, emp.Image, emp.Gender, emp.HireDate, emp.MailAddress,
		emp.ZipCode, emp.Address, emp.Telephone, emp.Salary, emp.Characteristics, emp.DependentsCount,
	); err != nil {
		return Employee{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Employee{}, err
	}
	return emp, nil
}

func (s *Store) UpdateDependents(ctx context.Context, id, count int) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET dependents_count = $1
    WHERE id = $2
  `, count, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanEmployee(row pgx.Row) (*Employee, error) {
	var emp Employee
	if err := row.Scan(
		&emp.ID, &emp.Name, &emp.Image, &emp.Gender, &emp.HireDate, &emp.MailAddress,
		&emp.ZipCode, &emp.Address, &emp.Telephone, &emp.Salary, &emp.Characteristics, &emp.DependentsCount,
	); err != nil {
		return nil, err
	}
	return &emp, nil
}

func scanEmployees(rows pgx.Rows) ([]Employee, error) {
	out := []Employee{}
	for rows.Next() {
		var emp Employee
		if err := rows.Scan(
			&emp.ID, &emp.Name, &emp.Image, &emp.Gender, &emp.HireDate, &emp.MailAddress,
			&emp.ZipCode, &emp.Address, &emp.Telephone, &emp.Salary, &emp.Characteristics, &emp.DependentsCount,
		); err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}
