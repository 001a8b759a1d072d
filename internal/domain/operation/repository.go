package operation

import "context"

type Repository interface {
	Create(ctx context.Context, op *Operation) error
	CreateBatch(ctx context.Context, ops []*Operation) error
	ListRecent(ctx context.Context, limit int) ([]Operation, error)
	ListByActor(ctx context.Context, actorUserID string, limit int) ([]Operation, error)
}
