// Package mocks provides shared test doubles for the store, auth, and cache
// interfaces.
//
// Most mocks use function fields: set the field to override a method, or
// leave it nil to get a simple in-memory default behavior.
//
//	users := mocks.NewMockUserStore()
//	users.GetByUsernameFn = func(ctx context.Context, username string) (*domain.User, error) {
//	    return nil, store.ErrUserNotFound
//	}
//
// TestifyMockTaskStore is the exception: it is built on testify/mock for
// tests that assert exact call sequences.
package mocks
