package descriptionscmd

import (
	"context"

	"github.com/goliatone/go-holidays/internal/commands"
	"github.com/goliatone/go-holidays/pkg/interfaces"
)

const refreshSnapshotMessageType = "holidays.snapshot.refresh"

// SnapshotRefresher is the narrow surface the refresh command needs from the
// snapshot store.
type SnapshotRefresher interface {
	Refresh(ctx context.Context) error
}

// RefreshSnapshotCommand requests an out-of-band reload of the local
// snapshot, typically after an external sync step rewrote the file.
type RefreshSnapshotCommand struct{}

// Type implements command.Message.
func (RefreshSnapshotCommand) Type() string { return refreshSnapshotMessageType }

// Validate implements command.Message; the message carries no payload.
func (RefreshSnapshotCommand) Validate() error { return nil }

// RefreshSnapshotHandler reloads the snapshot store through the shared
// command handler foundation.
type RefreshSnapshotHandler struct {
	inner *commands.Handler[RefreshSnapshotCommand]
}

// NewRefreshSnapshotHandler constructs a handler wired to the snapshot store.
func NewRefreshSnapshotHandler(store SnapshotRefresher, logger interfaces.Logger, opts ...commands.HandlerOption[RefreshSnapshotCommand]) *RefreshSnapshotHandler {
	exec := func(ctx context.Context, _ RefreshSnapshotCommand) error {
		return store.Refresh(ctx)
	}

	handlerOpts := []commands.HandlerOption[RefreshSnapshotCommand]{
		commands.WithLogger[RefreshSnapshotCommand](logger),
		commands.WithOperation[RefreshSnapshotCommand]("snapshot.refresh"),
		commands.WithTelemetry(commands.DefaultTelemetry[RefreshSnapshotCommand](logger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RefreshSnapshotHandler{
		inner: commands.NewHandler[RefreshSnapshotCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[RefreshSnapshotCommand].Execute.
func (h *RefreshSnapshotHandler) Execute(ctx context.Context, msg RefreshSnapshotCommand) error {
	return h.inner.Execute(ctx, msg)
}
