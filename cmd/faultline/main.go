package main

import (
	"fmt"
	"io"
	"log"
	"os"
)

// command describes a CLI subcommand.
type command struct {
	name  string
	short string
	usage string
	long  string
	run   func(args []string) error
}

var commands = []command{
	{
		name:  "analyze",
		short: "Analyse a fault tree text file",
		usage: "faultline analyze <ft.txt>",
		long: `Parse the fault tree text file, compute minimal cut sets, quantities,
and contributions for every gate, and write the results to the
directory <ft.txt>.out/:

    events.tsv               all declared events
    gates.tsv                all declared gates
    cut-sets/<gate>.tsv      minimal cut sets per gate
    contributions/<gate>.tsv per-event contributions per gate
    figures/<gate>.svg       one figure per top or paged gate
    figures/index.html       two-way object/figure lookup

Analysis options are read from .faultline/settings.yaml in the working
directory, if present.
`,
		run: runAnalyze,
	},
	{
		name:  "view",
		short: "Browse gates and cut sets interactively",
		usage: "faultline view <ft.txt>",
		long: `Analyse the fault tree text file and browse the results in the
terminal. The gate table lists every gate with its quantity; pressing
enter drills into the selected gate's minimal cut sets, and tab flips
between cut sets and per-event contributions.
`,
		run: runView,
	},
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "faultline — slow fault tree analysis\n\n")
	fmt.Fprintf(w, "Usage:\n  faultline <command> [arguments]\n\n")
	fmt.Fprintf(w, "Commands:\n")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", cmd.name, cmd.short)
	}
	fmt.Fprintf(w, "\nRun 'faultline help <command>' for details on a specific command.\n")
}

func printCommandHelp(w io.Writer, name string) {
	for _, cmd := range commands {
		if cmd.name == name {
			fmt.Fprintf(w, "Usage: %s\n\n%s", cmd.usage, cmd.long)
			return
		}
	}
	fmt.Fprintf(w, "faultline: unknown command %q\n\nRun 'faultline help' for usage.\n", name)
}

func dispatch(args []string) error {
	if len(args) == 0 || args[0] == "--help" || args[0] == "-h" {
		printUsage(os.Stdout)
		return nil
	}
	if args[0] == "help" {
		if len(args) >= 2 {
			printCommandHelp(os.Stdout, args[1])
		} else {
			printUsage(os.Stdout)
		}
		return nil
	}
	for _, cmd := range commands {
		if cmd.name == args[0] {
			return cmd.run(args[1:])
		}
	}
	return fmt.Errorf("unknown command %q\n\nRun 'faultline help' for usage.", args[0])
}

func main() {
	if err := dispatch(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
