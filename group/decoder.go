// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package group

import "fmt"

// Decoder reads a fixed-layout concatenation of canonical encodings. The
// first failure is sticky: later reads return zero values and Err reports
// the failure.
type Decoder struct {
	data []byte
	err  error
}

// NewDecoder returns a Decoder over data, which must be exactly size bytes
// long.
func NewDecoder(data []byte, size int) *Decoder {
	d := &Decoder{data: data}
	if len(data) != size {
		d.err = fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidEncoding, len(data), size)
	}
	return d
}

func (d *Decoder) advance(n int) []byte {
	ret := d.data[0:n]
	d.data = d.data[n:]
	return ret
}

func (d *Decoder) fail(field string, err error) {
	d.err = fmt.Errorf("failed to unmarshal %s: %w", field, err)
}

// Scalar reads the next scalar; field names it in errors.
func (d *Decoder) Scalar(field string) Scalar {
	if d.err != nil {
		return Scalar{}
	}
	s, err := ParseScalar(d.advance(ScalarSize))
	if err != nil {
		d.fail(field, err)
	}
	return s
}

// G1 reads the next G1 element.
func (d *Decoder) G1(field string) G1 {
	if d.err != nil {
		return G1{}
	}
	p, err := ParseG1(d.advance(G1Size))
	if err != nil {
		d.fail(field, err)
	}
	return p
}

// G2 reads the next G2 element.
func (d *Decoder) G2(field string) G2 {
	if d.err != nil {
		return G2{}
	}
	p, err := ParseG2(d.advance(G2Size))
	if err != nil {
		d.fail(field, err)
	}
	return p
}

// GT reads the next GT element.
func (d *Decoder) GT(field string) GT {
	if d.err != nil {
		return GT{}
	}
	e, err := ParseGT(d.advance(GTSize))
	if err != nil {
		d.fail(field, err)
	}
	return e
}

// Err returns the first error encountered.
func (d *Decoder) Err() error {
	return d.err
}
