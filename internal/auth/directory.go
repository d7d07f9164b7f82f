package auth

import (
	"context"
	"errors"

	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/store"
)

// LookupStatus distinguishes "no such user" from "directory broken".
// Login must fail generically on the former but may report the latter.
type LookupStatus int

const (
	LookupFound LookupStatus = iota
	LookupNotFound
	LookupUnavailable
)

// Directory resolves login identifiers to user records.
type Directory interface {
	Lookup(ctx context.Context, ident string) (store.User, LookupStatus)
}

// Chain tries directories in order. An unavailable directory is skipped
// so a broken backing store does not take login down entirely. A
// definitive NotFound from any healthy directory counts as exhaustion;
// the chain reports Unavailable only when every directory was down.
// Anything else would let callers tell "unknown here" from "unknown
// everywhere" during a partial outage.
type Chain []Directory

func (c Chain) Lookup(ctx context.Context, ident string) (store.User, LookupStatus) {
	answered := false
	for _, d := range c {
		u, status := d.Lookup(ctx, ident)
		switch status {
		case LookupFound:
			return u, LookupFound
		case LookupNotFound:
			answered = true
		}
	}
	if !answered && len(c) > 0 {
		return store.User{}, LookupUnavailable
	}
	return store.User{}, LookupNotFound
}

// StoreDirectory backs the directory with the SQLite user table.
type StoreDirectory struct {
	Store *store.Store
}

func (d *StoreDirectory) Lookup(ctx context.Context, ident string) (store.User, LookupStatus) {
	u, err := d.Store.UserByUsernameOrEmail(ctx, ident)
	if errors.Is(err, store.ErrNotFound) {
		return store.User{}, LookupNotFound
	}
	if err != nil {
		return store.User{}, LookupUnavailable
	}
	return u, LookupFound
}
