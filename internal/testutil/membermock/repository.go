package membermock

import (
	"context"

	domain "tablebanking/internal/domain/member"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	GetByMemberIDFn func(ctx context.Context, memberID string) (*domain.Member, error)
}

func (m *Repo) GetByMemberID(ctx context.Context, memberID string) (*domain.Member, error) {
	if m.GetByMemberIDFn != nil {
		return m.GetByMemberIDFn(ctx, memberID)
	}
	return nil, domain.ErrNotFound
}
