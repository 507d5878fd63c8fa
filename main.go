package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"datepick/internal/cli"
	"datepick/internal/config"
	"datepick/internal/date"
	"datepick/internal/logs"
	"datepick/internal/tui"
)

func main() {
	// Parse CLI flags
	configFlag := flag.String("config", "", "Config file path")
	modeFlag := flag.String("mode", "", "Picker to launch: single or range")
	monthsFlag := flag.Int("months", 0, "Number of visible months")
	flag.IntVar(monthsFlag, "n", 0, "Number of visible months (shorthand)")
	orientationFlag := flag.String("orientation", "", "horizontal, vertical or verticalScrollable")
	firstDayFlag := flag.String("first-day", "", "First day of the week")
	blockedFlag := flag.String("blocked", "", "Blocked weekdays (comma-separated)")
	infoFlag := flag.String("info", "", "Markdown file shown under the calendar")
	flag.Parse()

	// Build CLIFlags
	cliFlags := config.CLIFlags{
		ConfigPath:      *configFlag,
		Mode:            *modeFlag,
		Months:          *monthsFlag,
		Orientation:     *orientationFlag,
		FirstDayOfWeek:  *firstDayFlag,
		BlockedWeekdays: config.ParseCommaSeparated(*blockedFlag),
		InfoFile:        *infoFlag,
	}

	// Load configuration
	cfg, err := config.Load(cliFlags)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ensure config file exists
	if err := config.EnsureConfigFile(); err != nil {
		log.Printf("Warning: could not create config file: %v", err)
	}

	// Reinitialize logger
	if err := logs.Initialize(cfg.LogDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not initialize logger: %v\n", err)
	}
	defer logs.Close()

	clock := date.SystemClock{}

	// Check for CLI subcommands
	if args := flag.Args(); len(args) > 0 {
		code := cli.Run(args, cfg, clock)
		logs.Close()
		os.Exit(code)
	}

	// TUI mode
	logs.Logger.Println("Starting app in TUI mode")
	appModel, err := tui.NewAppModel(cfg, clock)
	if err != nil {
		log.Fatalf("Failed to create picker: %v", err)
	}
	defer appModel.Teardown()

	p := tea.NewProgram(appModel, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		fmt.Println("Error running program:", err)
		os.Exit(1)
	}
}
