// Package main is the entry point for the Finetune Prep TUI application.
// It initializes configuration, services, and runs the Bubble Tea program.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/r-maier/finetune-prep-tui/internal/app"
	"github.com/r-maier/finetune-prep-tui/internal/config"
	"github.com/r-maier/finetune-prep-tui/internal/exchange"
	"github.com/r-maier/finetune-prep-tui/internal/services"
	"github.com/r-maier/finetune-prep-tui/internal/tokens"
	"github.com/r-maier/finetune-prep-tui/internal/ui/tabs/history"
	"github.com/r-maier/finetune-prep-tui/internal/ui/tabs/info"
	"github.com/r-maier/finetune-prep-tui/internal/ui/tabs/issues"
	"github.com/r-maier/finetune-prep-tui/internal/ui/tabs/report"
	"github.com/r-maier/finetune-prep-tui/internal/validate"
	"github.com/r-maier/finetune-prep-tui/internal/version"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "-v", "--version":
			fmt.Println(version.Info())
			os.Exit(0)
		case "-h", "--help":
			printUsage()
			os.Exit(0)
		case "check":
			os.Exit(runCheck(os.Args[2:]))
		case "convert":
			os.Exit(runConvert(os.Args[2:]))
		}
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run contains the TUI application logic, separated for cleaner error handling.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Starts the dataset watcher and the analysis pipeline
	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	model := app.NewModel(svcManager)

	// Each tab receives the shared application state for consistent data access
	state := model.GetState()
	tabs := []app.Tab{
		report.New(state, cfg.Limits),  // Tab 0: Report - token accounting
		issues.New(state),              // Tab 1: Issues - validation findings
		history.New(state, svcManager), // Tab 2: History - recorded runs
		info.New(state, cfg),           // Tab 3: Info - configuration and app info
	}
	model.SetTabs(tabs)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// runCheck validates and accounts a dataset without starting the TUI.
// It exits non-zero when the dataset has format issues.
func runCheck(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	path := cfg.DatasetPath
	if len(args) > 0 {
		path = args[0]
	}

	examples, err := exchange.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	issues := validate.Dataset(examples)
	report, err := tokens.New(nil, cfg.Limits).Account(examples)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Printf("Dataset: %s\n", path)
	fmt.Printf("Examples: %d\n", report.NumExamples)
	fmt.Printf("Issues: %d\n", len(issues))
	for _, issue := range issues {
		fmt.Printf("  %s\n", issue)
	}

	if report.NumExamples > 0 {
		fmt.Printf("Total tokens: min %d / mean %.1f / max %d\n",
			report.Total.Min, report.Total.Mean, report.Total.Max)
		fmt.Printf("Assistant tokens: min %d / mean %.1f / max %d\n",
			report.Assistant.Min, report.Assistant.Mean, report.Assistant.Max)
		fmt.Printf("Missing system message: %d\n", report.MissingSystem)
		fmt.Printf("Missing user message: %d\n", report.MissingUser)
		fmt.Printf("Over context limit: %d\n", report.Truncated)
		fmt.Printf("Estimated cost: %d epochs x %d tokens = %d billed tokens\n",
			report.Cost.Epochs, report.Cost.BillableTokens, report.Cost.BilledTokens)
	}

	if len(issues) > 0 {
		return 1
	}
	return 0
}

// runConvert turns a review CSV into chat-format JSONL.
func runConvert(args []string) int {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: fpt convert <reviews.csv> <out.jsonl>")
		return 1
	}

	n, err := exchange.Convert(args[0], args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Printf("Wrote %d examples to %s\n", n, args[1])
	return 0
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`Finetune Prep TUI - Chat dataset validator and token accountant

Usage:
  fpt [flags]
  fpt check [dataset.jsonl]         Validate and account a dataset, then exit
  fpt convert <reviews.csv> <out>   Convert a review CSV to chat JSONL

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Keyboard Shortcuts:
  1-4             Switch between tabs (Report, Issues, History, Info)
  Tab/Shift+Tab   Navigate between tabs
  j/k, Up/Down    Navigate lists
  r               Reload the dataset
  t               Toggle the history window size
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  DATASET_PATH        JSONL training file to analyze (default: train.jsonl)
  DATABASE_PATH       SQLite database recording analysis runs
  WATCH_DEBOUNCE      Delay before re-analyzing after a file change (default: 500ms)
  MAX_CONTEXT_LENGTH  Token cap per example for cost estimation

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/finetune-prep-tui/.env
  - ~/.finetune-prep/.env`)
}
