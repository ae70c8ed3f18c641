package descriptionscmd

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

type stubRefresher struct {
	calls int
	err   error
}

func (s *stubRefresher) Refresh(context.Context) error {
	s.calls++
	return s.err
}

func TestRefreshSnapshotHandlerExecutesStore(t *testing.T) {
	store := &stubRefresher{}
	handler := NewRefreshSnapshotHandler(store, nil)

	if err := handler.Execute(context.Background(), RefreshSnapshotCommand{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if store.calls != 1 {
		t.Fatalf("expected one refresh, got %d", store.calls)
	}
}

func TestRefreshSnapshotHandlerWrapsStoreError(t *testing.T) {
	store := &stubRefresher{err: errors.New("corrupt file")}
	handler := NewRefreshSnapshotHandler(store, nil)

	err := handler.Execute(context.Background(), RefreshSnapshotCommand{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}
