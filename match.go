// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package avrocore

import "sync"

// matchCacheCapacity is the entry-count threshold past which MatchCache
// clears itself wholesale rather than evicting individual entries (spec
// §3: "not an LRU").
const matchCacheCapacity = 20

type matchKey struct {
	w, r Schema
}

// MatchCache memoizes Match by schema pair identity. The design notes
// (spec §9) call for an explicit cache rather than hidden global state,
// so callers construct one and pass it to a DatumReader; DefaultMatchCache
// exists for callers that don't care to manage their own.
type MatchCache struct {
	mu sync.RWMutex
	m  map[matchKey]bool
}

// NewMatchCache returns an empty cache ready for concurrent use.
func NewMatchCache() *MatchCache {
	return &MatchCache{m: make(map[matchKey]bool)}
}

// DefaultMatchCache is the package-level cache DatumReader uses when
// constructed without one of its own.
var DefaultMatchCache = NewMatchCache()

// Match implements spec §4.3: identity short-circuit, then a memoized
// structural comparison of the writer and reader schemas.
func (c *MatchCache) Match(w, r Schema) bool {
	if w == r {
		return true
	}
	key := matchKey{w, r}

	c.mu.RLock()
	v, ok := c.m[key]
	c.mu.RUnlock()
	if ok {
		return v
	}

	result := computeMatch(w, r)

	c.mu.Lock()
	if len(c.m) > matchCacheCapacity {
		c.m = make(map[matchKey]bool)
	}
	c.m[key] = result
	c.mu.Unlock()

	return result
}

// Match is a convenience wrapper around DefaultMatchCache.Match.
func Match(w, r Schema) bool { return DefaultMatchCache.Match(w, r) }

func computeMatch(w, r Schema) bool {
	if w.Type() == r.Type() {
		switch w.Type() {
		case TypeRecord, TypeEnum, TypeError:
			return w.FullName() == r.FullName()
		case TypeFixed:
			wf, rf := w.(*FixedSchema), r.(*FixedSchema)
			return wf.Name == rf.Name && wf.Size == rf.Size
		case TypeRequest:
			return true
		case TypeArray:
			return w.(*ArraySchema).Items.Type() == r.(*ArraySchema).Items.Type()
		case TypeMap:
			return w.(*MapSchema).Values.Type() == r.(*MapSchema).Values.Type()
		default:
			return true
		}
	}

	if isUnionType(w.Type()) || isUnionType(r.Type()) {
		return true
	}

	return isPromotion(w.Type(), r.Type())
}

func isUnionType(t Type) bool { return t == TypeUnion || t == TypeErrorUnion }

// isPromotion reports whether from can be widened to to during
// resolution (spec §4.3). Promotion is one-directional.
func isPromotion(from, to Type) bool {
	switch from {
	case TypeInt:
		return to == TypeLong || to == TypeFloat || to == TypeDouble
	case TypeLong:
		return to == TypeFloat || to == TypeDouble
	case TypeFloat:
		return to == TypeDouble
	default:
		return false
	}
}
