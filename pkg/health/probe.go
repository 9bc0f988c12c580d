package health

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/crmlink/pkg/kvstore"
)

const probeTTL = 10 * time.Second

// StoreCheck returns a CheckFunc that writes, reads back and deletes a
// short-lived probe entry.
func StoreCheck(store kvstore.Store) CheckFunc {
	return func(ctx context.Context) error {
		key := "health_probe:" + uuid.NewString()
		want := time.Now().UTC().Format(time.RFC3339Nano)

		if err := store.Put(ctx, key, want, probeTTL); err != nil {
			return errors.Join(ErrCheckFailed, fmt.Errorf("put: %w", err))
		}
		got, err := store.Get(ctx, key)
		if err != nil {
			return errors.Join(ErrCheckFailed, fmt.Errorf("get: %w", err))
		}
		if got != want {
			return errors.Join(ErrCheckFailed, errors.New("probe value mismatch"))
		}
		if err := store.Delete(ctx, key); err != nil {
			return errors.Join(ErrCheckFailed, fmt.Errorf("delete: %w", err))
		}
		return nil
	}
}
