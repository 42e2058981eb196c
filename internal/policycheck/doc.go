// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package policycheck holds tests that type check the module's packages
// and reject code patterns that leak or mishandle key material: hex
// formatting verbs in format strings, and == or != on byte slices or on
// their string conversions. It has no API.
package policycheck
