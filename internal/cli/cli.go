package cli

import (
	"fmt"
	"io"
	"os"

	"datepick/internal/config"
	"datepick/internal/date"
)

// Output streams, swapped out by tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Run executes the CLI with the given arguments.
// The first argument is the command name.
func Run(args []string, cfg *config.Config, clock date.Clock) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "check", "c":
		return runCheck(cmdArgs, cfg, clock)
	case "parse", "p":
		return runParse(cmdArgs, clock)
	case "months", "cal":
		return runMonths(cmdArgs, cfg, clock)
	case "help", "-h", "--help":
		printUsage()
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage()
		return 1
	}
}

func printUsage() {
	fmt.Fprintln(stdout, `datepick - Terminal date and date-range picker

Usage: datepick [flags] [command] [arguments]

Commands:
  check, c    Report whether dates can be picked under the configured rules
              datepick check 2026-12-25 tomorrow +14

  parse, p    Resolve typed text to a date
              datepick parse "next fri"

  months, cal Print the calendar months the picker would show
              datepick months                # from the current month
              datepick months --from 2027-02 # from February 2027
              datepick months -n 3           # three months

  help        Show this help message

Flags:
      --config <path>       Config file (default ~/.config/datepick/config.yaml)
      --mode <name>         Picker to launch: single or range
  -n, --months <n>          Number of visible months
      --orientation <name>  horizontal, vertical or verticalScrollable
      --first-day <day>     First day of the week
      --blocked <days>      Blocked weekdays (comma-separated)
      --info <path>         Markdown file shown under the calendar

Running datepick without arguments launches the interactive picker.`)
}
