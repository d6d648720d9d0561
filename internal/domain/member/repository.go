package member

import "context"

type Repository interface {
	GetByMemberID(ctx context.Context, memberID string) (*Member, error)
}
