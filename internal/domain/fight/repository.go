package fight

import "context"

// Repository describes fight result reads needed by scoring.
type Repository interface {
	ListByEvent(ctx context.Context, eventID string) ([]Fight, error)
}
