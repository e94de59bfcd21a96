package user

import "context"

type Repository interface {
	ListByIDs(ctx context.Context, userIDs []string) ([]User, error)
}
