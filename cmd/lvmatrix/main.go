// SPDX-License-Identifier: MIT

// Command lvmatrix evaluates matrix calculations given as literals.
package main

import "github.com/katalvlaran/lvmatrix/internal/cli"

func main() {
	cli.Execute()
}
