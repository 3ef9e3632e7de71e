package employee

import "context"

type StoreAPI interface {
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id int) (*Employee, error)
	FindByName(ctx context.Context, term string) ([]Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	FindPage(ctx context.Context, pageNum, pageSize int) ([]Employee, error)
	Create(ctx context.Context, emp Employee) (Employee, error)
	UpdateDependents(ctx context.Context, id, count int) error
}
