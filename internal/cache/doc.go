// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package cache is the client side of the conversion cache: a thin adapter
// over a Redis-compatible store selected by host, port and logical database
// index. Transport failures surface as *UnavailableError so callers can
// decide whether to degrade or fail.
package cache
