package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"github.com/felixgeelhaar/codelearn/internal/domain"
)

// Version is set at build time via ldflags
var Version = "dev"

const pidFile = "codelearnd.pid"

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
	headColor = color.New(color.FgCyan, color.Bold)
	dimColor  = color.New(color.FgHiBlack)
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "start":
		err = cmdStart()
	case "stop":
		err = cmdStop()
	case "status":
		err = cmdStatus()
	case "logs":
		err = cmdLogs()
	case "config":
		err = cmdConfig()
	case "lint":
		err = cmdLint(os.Args[2:])
	case "highlight":
		err = cmdHighlight(os.Args[2:])
	case "exercise":
		err = cmdExercise(os.Args[2:])
	case "tutorial":
		err = cmdTutorial(os.Args[2:])
	case "runs":
		err = cmdRuns(os.Args[2:])
	case "tui":
		err = cmdTUI()
	case "mcp":
		err = cmdMCP()
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Printf("codelearn %s\n", Version)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		failColor.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`CodeLearn - Practice workbench for learning JavaScript

Usage:
  codelearn <command> [arguments]

Daemon Commands:
  start             Start the CodeLearn daemon
  stop              Stop the CodeLearn daemon
  status            Show daemon status
  logs              View daemon logs
  config            Show current configuration

Editor Commands:
  lint <file>       Show line diagnostics for a file
  highlight <file>  Print a file with syntax colouring (--html for markup)

Content Commands:
  exercise list     List exercises (--difficulty, --topic)
  exercise info     Show exercise details
  exercise random   Pick a random exercise (--difficulty, --topic)
  tutorial show     Show a tutorial step

Other Commands:
  runs watch        Print run notifications from RabbitMQ
  tui               Open the workbench in the terminal
  mcp               Start MCP server on stdio
  help              Show this help message
  version           Show version information

Examples:
  codelearn start                         # Start daemon
  codelearn lint solution.js              # Check a file
  codelearn exercise list --difficulty beginner
  codelearn tutorial show javascript-functions 2
  codelearn tui                           # Terminal workbench`)
}

// renderProgressBar creates a visual progress bar for a 0..100 percentage
func renderProgressBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

// newFlagSet returns a subcommand flag set that reports parse errors
// instead of exiting
func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	return fs
}

// parseArgs parses args into fs and returns the positional arguments. Parse
// errors carry the flag usage.
func parseArgs(fs *pflag.FlagSet, args []string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		usage := fs.FlagUsages()
		if usage == "" {
			return nil, fmt.Errorf("%s: %w (no flags accepted)", fs.Name(), err)
		}
		return nil, fmt.Errorf("%s: %w\n\nFlags:\n%s", fs.Name(), err, usage)
	}
	return fs.Args(), nil
}

func severityColor(s domain.Severity) *color.Color {
	if s == domain.SeverityError {
		return failColor
	}
	return color.New(color.FgYellow)
}
