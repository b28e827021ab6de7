//go:build tools

package holeio

import (
	_ "golang.org/x/tools/cmd/stringer"
)
