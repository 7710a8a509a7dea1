// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"errors"
	"fmt"
)

// ConnectionError means the store could not be reached when connecting.
type ConnectionError struct {
	Addr string
	DB   int
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("cache unreachable at %s (db %d): %v", e.Addr, e.DB, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// UnavailableError is a transport failure during an individual operation.
type UnavailableError struct {
	Op  string
	Key string
	Err error
}

func (e *UnavailableError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("cache %s %q failed: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("cache %s failed: %v", e.Op, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// IsUnavailable reports whether err is a transport-level cache failure,
// either at connect time or during an operation.
func IsUnavailable(err error) bool {
	var ue *UnavailableError
	if errors.As(err, &ue) {
		return true
	}
	var ce *ConnectionError
	return errors.As(err, &ce)
}

func unavailable(op, key string, err error) error {
	return &UnavailableError{Op: op, Key: key, Err: err}
}
