// Copyright 2015 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package timing records a tree of named time intervals, such as the key
// generation, encryption, proving and verification steps of a protocol
// run, and prints them as an aligned table.
package timing

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// nowFunc is used rather than direct calls to time.Now to allow tests to inject
// different clock functions.
var nowFunc = time.Now

// Interval is a named time interval and its children. The children are
// non-overlapping and ordered from earliest to latest, and the interval
// always covers all of them.
type Interval struct {
	Name       string
	Start, End time.Time
	Children   []Interval
}

// Duration returns the elapsed time of the interval, measured up to now if
// the interval is still open.
func (i Interval) Duration(now time.Time) time.Duration {
	if i.End.IsZero() {
		return now.Sub(i.Start)
	}
	return i.End.Sub(i.Start)
}

// Timer tracks a tree of hierarchical time intervals. It maintains a
// current interval, initialized to the root; Push and Pop descend into and
// return from children. A Timer is not safe for concurrent use.
type Timer struct {
	root Interval
	// stack holds the path from the root to the current interval, excluding
	// the root. Pointers stay valid since the stack never holds a pointer to
	// a child while its parent's Children slice grows.
	stack []*Interval
}

// NewTimer returns a Timer whose root interval is named name and starts now.
func NewTimer(name string) *Timer {
	return &Timer{root: Interval{Name: name, Start: nowFunc()}}
}

// Push appends an open child named name to the current interval and makes
// it current.
func (t *Timer) Push(name string) {
	var current *Interval
	if len(t.stack) == 0 {
		// Unset the root end time, to handle Push after Finish.
		t.root.End = time.Time{}
		current = &t.root
	} else {
		current = t.stack[len(t.stack)-1]
	}
	current.Children = append(current.Children, Interval{Name: name, Start: nowFunc()})
	t.stack = append(t.stack, &current.Children[len(current.Children)-1])
}

// Pop closes the current interval and makes its parent current. Pop on the
// root does nothing.
func (t *Timer) Pop() {
	if len(t.stack) == 0 {
		return
	}
	last := len(t.stack) - 1
	t.stack[last].End = nowFunc()
	t.stack = t.stack[:last]
}

// Time runs fn inside a child interval named name.
func (t *Timer) Time(name string, fn func() error) error {
	t.Push(name)
	defer t.Pop()
	return fn()
}

// Finish closes all open intervals including the root.
func (t *Timer) Finish() {
	end := nowFunc()
	t.root.End = end
	for _, interval := range t.stack {
		interval.End = end
	}
	t.stack = t.stack[:0]
}

// Root returns a copy of the root interval.
func (t *Timer) Root() Interval {
	return t.root
}

// String returns the table printed by Print.
func (t *Timer) String() string {
	var buf strings.Builder
	Print(&buf, t.root)
	return buf.String()
}

// Print writes one row per interval of the tree rooted at i, children
// indented below their parent, for example:
//
//	transfer        2.412s
//	   keygen       0.004s
//	   prove        1.103s
//	   verify       1.305s
func Print(w io.Writer, i Interval) error {
	const indent = 3
	now := nowFunc()
	width, maxDur := 1, time.Duration(0)
	var collect func(i Interval, depth int)
	collect = func(i Interval, depth int) {
		if x := len(i.Name) + indent*depth; x > width {
			width = x
		}
		if d := i.Duration(now); d > maxDur {
			maxDur = d
		}
		for _, c := range i.Children {
			collect(c, depth+1)
		}
	}
	collect(i, 0)
	durWidth := len(fmt.Sprintf("%.3f", maxDur.Seconds()))
	var print func(i Interval, depth int) error
	print = func(i Interval, depth int) error {
		label := strings.Repeat(" ", indent*depth) + i.Name
		if _, err := fmt.Fprintf(w, "%-*s %*.3fs\n", width, label, durWidth, i.Duration(now).Seconds()); err != nil {
			return err
		}
		for _, c := range i.Children {
			if err := print(c, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	return print(i, 0)
}
