// Command splitcalc splits an expense and checks drafts from the terminal.
//
//	splitcalc shares --total 10.00 alice bob carol
//	splitcalc shares --total 60 --mode percentage alice=25 bob=75
//	splitcalc validate dinner.yaml
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
