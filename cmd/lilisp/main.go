// Command lilisp parses and evaluates a single S-expression, either
// given on the command line or read from a file.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/clarete/lilisp"
)

const usage = `usage: lilisp [-tghvpcroif] [-n <cells>] <expr-or-path>

  t  run the built-in self tests and exit
  h  print this message and exit
  g  enable GC statistics trace to stdout
  v  enable per-step evaluation trace to stdout
  p  select the CPS evaluator (default)
  c  select the classic evaluator
  r  print the result as an integer exit code
  o  write the formatted result to stdout (default)
  i  interpret the positional argument as an expression (default)
  f  interpret the positional argument as a file path
  repl  start an interactive read-eval-print loop
  n <cells>  set the cell heap capacity
`

// readArgs is the parsed form of os.Args, built up one flag-group at
// a time the way the grammar toolkit's CLI does it: a struct of
// plain fields rather than a flag.FlagSet, since these flags are
// letters grouped behind a single dash (`-tgv`) rather than GNU-style
// long options.
type readArgs struct {
	selfTest   bool
	help       bool
	gcTrace    bool
	stepTrace  bool
	classic    bool
	exitCode   bool
	fromFile   bool
	repl       bool
	heapCells  int
	positional string
}

func parseArgs(argv []string) (readArgs, error) {
	var a readArgs
	var rest []string

	i := 0
	for i < len(argv) {
		arg := argv[i]
		switch {
		case arg == "-repl":
			a.repl = true
		case arg == "-n":
			if i+1 >= len(argv) {
				return a, lilisp.UsageError{Message: "-n requires an integer argument"}
			}
			i++
			n, err := strconv.Atoi(argv[i])
			if err != nil {
				return a, lilisp.UsageError{Message: "-n requires an integer argument"}
			}
			a.heapCells = n
		case strings.HasPrefix(arg, "-") && arg != "-":
			for _, f := range arg[1:] {
				switch f {
				case 't':
					a.selfTest = true
				case 'h':
					a.help = true
				case 'g':
					a.gcTrace = true
				case 'v':
					a.stepTrace = true
				case 'p':
					a.classic = false
				case 'c':
					a.classic = true
				case 'r':
					a.exitCode = true
				case 'o':
					a.exitCode = false
				case 'i':
					a.fromFile = false
				case 'f':
					a.fromFile = true
				default:
					return a, lilisp.UsageError{Message: fmt.Sprintf("unknown flag %q", string(f))}
				}
			}
		default:
			rest = append(rest, arg)
		}
		i++
	}

	switch {
	case a.help, a.selfTest, a.repl:
		// positional argument is optional for these modes
	case len(rest) == 0:
		return a, lilisp.UsageError{Message: "missing expression or file argument"}
	default:
		a.positional = rest[0]
	}
	if len(rest) > 0 {
		a.positional = rest[0]
	}
	return a, nil
}

func main() {
	a, err := parseArgs(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	if a.help {
		fmt.Print(usage)
		os.Exit(0)
	}

	if a.selfTest {
		if err := lilisp.RunSelfTests(); err != nil {
			log.Fatal(err)
		}
		fmt.Println("tests passed")
		os.Exit(1)
	}

	opts := lilisp.DefaultOptions()
	if a.classic {
		opts.Strategy = lilisp.StrategyClassic
	}
	if a.heapCells > 0 {
		opts.HeapCapacity = a.heapCells
	}
	if a.gcTrace {
		opts.GCTrace = os.Stdout
	}
	if a.stepTrace {
		opts.StepTrace = os.Stdout
	}

	interp, err := lilisp.NewInterpreter(opts)
	if err != nil {
		log.Fatal(err)
	}

	if a.repl {
		runREPL(interp)
		return
	}

	var result int
	if a.fromFile {
		result, err = interp.EvalFile(a.positional)
	} else {
		result, err = interp.EvalString(a.positional)
	}
	if err != nil {
		log.Fatal(err)
	}

	if a.exitCode {
		os.Exit(interp.Context.Heap.AsInt(result))
	}
	fmt.Println(interp.Format(result))
}
