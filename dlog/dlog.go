// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dlog solves bounded discrete logarithms in GT with the
// baby-step giant-step algorithm.
//
// A Table holds the baby steps g^0..g^m keyed by canonical encoding and
// is read-only once built, so one Table may serve concurrent Solve calls for
// the same base and bound.
package dlog

import (
	"errors"
	"math"

	"v.io/x/aibe/group"
)

// ErrOutOfBound is returned when no x in [0, bound) satisfies h = g^x.
var ErrOutOfBound = errors.New("dlog: discrete log not found within bound")

// Table is the precomputed baby-step table for a base g and a bound.
type Table struct {
	bound uint64
	m     uint64
	baby  map[string]uint64
	giant group.GT // g^-m
}

// stepSize returns ceil(sqrt(bound)) + 1.
func stepSize(bound uint64) uint64 {
	const maxRoot = 1 << 32
	m := uint64(math.Sqrt(float64(bound)))
	if m >= maxRoot {
		return maxRoot + 1
	}
	// Correct float rounding in either direction.
	for m > 0 && m*m > bound {
		m--
	}
	for m < maxRoot && m*m < bound {
		m++
	}
	return m + 1
}

// NewTable precomputes the baby steps for solving h = g^x, x in [0, bound).
// The table holds m+1 entries where m = ceil(sqrt(bound)) + 1.
func NewTable(g group.GT, bound uint64) *Table {
	t := &Table{bound: bound}
	if bound == 0 {
		return t
	}
	t.m = stepSize(bound)
	t.baby = make(map[string]uint64, t.m+1)
	x := group.GTIdentity()
	for i := uint64(0); i <= t.m; i++ {
		if _, ok := t.baby[x.Key()]; !ok {
			t.baby[x.Key()] = i
		}
		x = x.Mul(g)
	}
	t.giant = g.Exp(group.NewScalar(t.m).Neg())
	return t
}

// Bound returns the exclusive upper bound of solutions.
func (t *Table) Bound() uint64 { return t.bound }

// Solve returns x in [0, bound) with h = g^x, or ErrOutOfBound.
func (t *Table) Solve(h group.GT) (group.Scalar, error) {
	if t.bound == 0 {
		return group.Scalar{}, ErrOutOfBound
	}
	x := h
	for j := uint64(0); j <= t.m; j++ {
		if i, ok := t.baby[x.Key()]; ok {
			v := j*t.m + i
			if v >= t.bound {
				return group.Scalar{}, ErrOutOfBound
			}
			return group.NewScalar(v), nil
		}
		x = x.Mul(t.giant)
	}
	return group.Scalar{}, ErrOutOfBound
}

// BabyStepGiantStep solves h = g^x for x in [0, bound). It builds a
// transient table; use NewTable to amortize the baby phase over many calls.
func BabyStepGiantStep(h, g group.GT, bound uint64) (group.Scalar, error) {
	return NewTable(g, bound).Solve(h)
}
