// Package cache provides the TTL key/value store the service memoizes
// computed statistics in. The store is injected as a capability so the cache
// policy is testable against the in-memory implementation; production uses
// Redis.
package cache

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// DefaultTTL is how long a computed result stays valid. The engine has no
// write path into the dataset, so entries are never invalidated explicitly;
// staleness up to the TTL is accepted.
const DefaultTTL = 600 * time.Second

// Store is the cache capability consumed by the service layer. Get returns
// (nil, false) on a miss or when the backing store is unreachable; a lookup
// failure degrades to a recomputation, never to a request failure.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration)
	Close() error
}

// Param is one normalized query parameter of a cache key.
type Param struct {
	Name  string
	Value any
}

// Key builds the deterministic cache key for a computation. scope is the grid
// id or "global". Parameters are sorted by name so equivalent queries always
// map to the same entry.
func Key(computation, scope string, params ...Param) string {
	var b strings.Builder
	b.WriteString(computation)
	b.WriteByte(':')
	b.WriteString(scope)

	sort.Slice(params, func(i, j int) bool { return params[i].Name < params[j].Name })
	for _, p := range params {
		fmt.Fprintf(&b, ":%s=%v", p.Name, p.Value)
	}
	return b.String()
}
