package admin

import "context"

type StoreAPI interface {
	FindByEmail(ctx context.Context, email string) (*Administrator, error)
	Insert(ctx context.Context, a Administrator) error
}
