package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/clarete/lilisp"
)

// runREPL drives an interactive read-eval-print loop against interp,
// printing each result and resetting the global environment between
// lines the way the self-test runner resets between cases, so one
// line's letrec bindings never leak into the next.
func runREPL(interp *lilisp.Interpreter) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Fprint(os.Stdout, "> ")
	for scanner.Scan() {
		line := scanner.Text()
		if line != "" {
			if err := interp.Reset(); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
			result, err := interp.EvalString(line)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
			} else {
				fmt.Println(interp.Format(result))
				if interp.LastError != nil {
					fmt.Fprintln(os.Stderr, interp.LastError)
				}
			}
		}
		fmt.Fprint(os.Stdout, "> ")
	}
}
