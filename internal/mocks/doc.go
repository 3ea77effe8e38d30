// Package mocks provides shared test doubles for the store and auth
// interfaces.
//
// MemoryDB is an in-memory stand-in for PostgreSQL. The Mock*Store types
// view one MemoryDB so that, as in the real schema, franchise admins are
// derived from the users' franchisee roles. Every Mock*Store method can be
// overridden through its Fn field:
//
//	db := mocks.NewMemoryDB()
//	users := mocks.NewMockUserStore(db)
//	users.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
//	    return nil, errors.New("connection refused")
//	}
//
// TestifyMockSessionStore is a testify/mock based double for tests that
// assert on individual calls.
package mocks
