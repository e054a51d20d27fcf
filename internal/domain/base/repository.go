package base

import "context"

type BaseRepository interface {
	Save(ctx context.Context, base *Base) error
	Update(ctx context.Context, base *Base) error
	Delete(ctx context.Context, baseID uint) error
	GetByID(ctx context.Context, baseID uint) (*Base, error)
	GetByCode(ctx context.Context, code string) (*Base, error)
	List(ctx context.Context, activeOnly bool) ([]*Base, error)
	CountMembers(ctx context.Context, baseID uint) (int64, error)
}
