package settingsmock

import (
	"context"

	domain "tablebanking/internal/domain/settings"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock; with no AllFn it reports an empty table.
type Repo struct {
	AllFn    func(ctx context.Context) (map[string]string, error)
	UpsertFn func(ctx context.Context, values map[string]string) error
}

func (m *Repo) All(ctx context.Context) (map[string]string, error) {
	if m.AllFn != nil {
		return m.AllFn(ctx)
	}
	return map[string]string{}, nil
}

func (m *Repo) Upsert(ctx context.Context, values map[string]string) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, values)
	}
	return nil
}
