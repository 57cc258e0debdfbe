package fetcher

import (
	"golang.org/x/sync/singleflight"
)

// Group collapses concurrent fetches of the same flight key within one
// assessment, so rules sharing a dependency cost one GitHub request.
type Group struct {
	g singleflight.Group
}

// Do runs fn once per key among concurrent callers. Every caller receives
// the same value and error; shared reports whether the result was handed to
// more than one caller.
func (g *Group) Do(key string, fn func() (any, error)) (v any, err error, shared bool) {
	return g.g.Do(key, fn)
}
