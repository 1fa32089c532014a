// SPDX-License-Identifier: MIT

// ltlsample generates positive and negative example traces for LTLf formulas.
package main

import (
	"os"

	"github.com/katalvlaran/ltlsample/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
