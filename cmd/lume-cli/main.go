// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"

	"github.com/tliron/commonlog"

	diag "lume/internal/errors"
	"lume/internal/interp"
	"lume/internal/ir"
)

const defaultProgram = "project.json"

func main() {
	path := defaultProgram
	verbosity := 0
	for _, arg := range os.Args[1:] {
		switch arg {
		case "-v", "--verbose":
			verbosity = 1
		case "-h", "--help":
			fmt.Println("Usage: lume [-v] [program.json]")
			return
		default:
			path = arg
		}
	}

	// Configure debug logging (1 = debug level, nil = default logger)
	commonlog.Configure(verbosity, nil)

	program, err := ir.LoadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, diag.FormatLoadError(path, err))
		os.Exit(2)
	}

	state := interp.NewState()
	if _, ok := interp.CallByName(program, state, "main", nil); !ok {
		fmt.Fprintln(os.Stderr, diag.FormatLoadError(path, fmt.Errorf("no main function")))
		os.Exit(2)
	}
}
