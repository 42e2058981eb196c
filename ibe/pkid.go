// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ibe

import (
	"time"

	"github.com/patrickmn/go-cache"

	"v.io/x/aibe/group"
)

// PkIDCache memoizes PkID. Results are identical to calling PkID directly;
// the cache only saves the pairing. It is safe for concurrent use.
type PkIDCache struct {
	c *cache.Cache
}

// NewPkIDCache returns a cache whose entries expire after ttl. A ttl of 0
// keeps entries until Flush.
func NewPkIDCache(ttl time.Duration) *PkIDCache {
	if ttl <= 0 {
		return &PkIDCache{c: cache.New(cache.NoExpiration, 0)}
	}
	return &PkIDCache{c: cache.New(ttl, 2*ttl)}
}

func pkIDKey(mpk group.G1, id string) string {
	return string(mpk.Bytes()) + id
}

// PkID returns e(mpk, H(id)).
func (p *PkIDCache) PkID(mpk group.G1, id string) group.GT {
	key := pkIDKey(mpk, id)
	if v, ok := p.c.Get(key); ok {
		return v.(group.GT)
	}
	v := PkID(mpk, id)
	p.c.SetDefault(key, v)
	return v
}

// Len returns the number of cached entries, including expired entries not
// yet evicted.
func (p *PkIDCache) Len() int {
	return p.c.ItemCount()
}

// Flush drops all entries.
func (p *PkIDCache) Flush() {
	p.c.Flush()
}
