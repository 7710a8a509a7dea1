// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package numeral

import (
	"errors"
	"fmt"
	"strconv"
)

// RangeError is returned by Encode when the value has no Roman representation.
// Input, when set, is the caller's text for a value too large to hold in an
// int and is reported in place of Value.
type RangeError struct {
	Value int
	Input string
}

func (e *RangeError) Error() string {
	v := strconv.Itoa(e.Value)
	if e.Input != "" {
		v = e.Input
	}
	return fmt.Sprintf("%s is out of range: roman numerals cover %d to %d", v, MinValue, MaxValue)
}

// FormatError is returned by Decode for malformed or non-canonical input.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid roman numeral %q: %s", e.Input, e.Reason)
}

// IsRangeError reports whether err is, or wraps, a *RangeError.
func IsRangeError(err error) bool {
	var re *RangeError
	return errors.As(err, &re)
}

// IsFormatError reports whether err is, or wraps, a *FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}
