package scoring

import "context"

// Repository describes scoring persistence needs from use cases.
type Repository interface {
	// Commit applies every operation of b in one transaction or none of them.
	Commit(ctx context.Context, b *Batch) error
	ListByEvent(ctx context.Context, eventID string) ([]FightScore, error)
}
