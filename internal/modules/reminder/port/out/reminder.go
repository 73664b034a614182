package out

import (
	"context"

	"jadwal/internal/modules/reminder/domain"
)

// Notifier presents a reminder to the user. Ready reports whether the sink
// can deliver at all; an error wraps apperrors.ErrNotificationUnavailable.
type Notifier interface {
	Name() string
	Ready(ctx context.Context) error
	Notify(ctx context.Context, notification domain.Notification) error
}

type Metrics interface {
	CycleStarted()
	Armed(n int)
	Skipped(n int)
	Fired(sink string)
	Failed(sink string)
	SetPending(n int)
}

// CatalogWatcher signals when the course catalog changed on disk.
type CatalogWatcher interface {
	Watch(ctx context.Context) (<-chan struct{}, error)
}

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

type PluginHost interface {
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.PluginMetadata, error)
	Notify(ctx context.Context, manifest domain.Manifest, notification domain.Notification) error
}

// MetricsServer exposes recorded metrics until ctx is cancelled.
type MetricsServer interface {
	Serve(ctx context.Context, addr string) error
}
