package interfaces

import (
	"context"

	"github.com/m-mizutani/relwatch/pkg/domain/model"
)

// Notifier delivers one rendered notification to the configured sink.
type Notifier interface {
	// Deliver performs a single outbound request. content is the rendered
	// template body; when empty, the sink's static data payload is sent
	// instead. Failures are reported, never retried.
	Deliver(ctx context.Context, sink *model.WebhookSink, content string) error
}
