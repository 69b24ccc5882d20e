package ports

import "context"

type EventPublisher interface {
	Emit(ctx context.Context, eventType string, payload map[string]any)
}
