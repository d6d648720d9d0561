package lockmock

import (
	"context"

	"tablebanking/internal/domain/uow"
)

var _ uow.Locker = (*Locker)(nil)

// Locker records lock usage; with no LockFn it always succeeds.
type Locker struct {
	LockFn   func(ctx context.Context, key string) (func(), error)
	Locked   []string
	Unlocked int
}

func (m *Locker) Lock(ctx context.Context, key string) (func(), error) {
	if m.LockFn != nil {
		return m.LockFn(ctx, key)
	}
	m.Locked = append(m.Locked, key)
	return func() { m.Unlocked++ }, nil
}
