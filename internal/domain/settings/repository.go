package settings

import "context"

type Repository interface {
	All(ctx context.Context) (map[string]string, error)
	Upsert(ctx context.Context, values map[string]string) error
}
