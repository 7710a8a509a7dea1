// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package meta

import (
	"context"
	"io"

	"github.com/staranto/easyconvert/internal/config"
)

// Meta are the meta-options that are available on all or most commands. It
// is built once in main and handed to every command through Metadata.
type Meta struct {
	Args    []string
	Cache   config.Cache
	Config  config.Type
	Context context.Context
	Stdout  io.Writer
	Stderr  io.Writer
}
