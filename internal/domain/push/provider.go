package push

import (
	"context"

	"respush/internal/domain/catalog"
)

// Provider defines the contract for a notification delivery channel.
// Implementations live in infra/ (e.g., the WeCom group robot webhook).
type Provider interface {
	// Send delivers a rendered message in a single attempt.
	Send(ctx context.Context, msg *Message) error

	// Channel returns which delivery channel this provider handles.
	Channel() Channel
}

// Renderer defines the contract for turning a sampled group into message text.
// Implementations live in infra/template/.
type Renderer interface {
	// Render produces the message body for a type. picked may be empty.
	Render(resType string, total int, picked []catalog.Item) (string, error)
}

// Pacer blocks between consecutive sends.
// Implementations live in infra/ratelimit/.
type Pacer interface {
	Wait(ctx context.Context) error
}
