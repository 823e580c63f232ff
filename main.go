// Command optbeam synthesizes the source amplitude of an optical beam hitting
// a planar dielectric interface from its plane-wave spectrum, and renders the
// result for inspection.
//
// Usage:
//
//	optbeam info <parameter-file>
//	optbeam profile <parameter-file> [--points n] [--csv file] [--plot file]
//	optbeam map <parameter-file> [--nx n] [--ny n] [--out prefix] [--show]
//	optbeam check <parameter-file> [--points n] [--span s]
package main

import (
	"fmt"
	"os"
)

const version = "0_1_0"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
