package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/felixgeelhaar/codelearn/internal/domain"
	"github.com/felixgeelhaar/codelearn/internal/highlight"
	"github.com/felixgeelhaar/codelearn/internal/lint"
)

// cmdLint prints the diagnostics for a file. Diagnostics are advisory, so
// the command succeeds whatever it finds.
func cmdLint(args []string) error {
	positional, err := parseArgs(newFlagSet("lint"), args)
	if err != nil {
		return err
	}
	if len(positional) < 1 {
		return fmt.Errorf("file required (e.g., codelearn lint solution.js)")
	}

	code, err := readSource(positional[0])
	if err != nil {
		return err
	}
	printDiagnostics(os.Stdout, positional[0], lint.Scan(code))
	return nil
}

func printDiagnostics(w io.Writer, name string, diags []domain.Diagnostic) {
	fmt.Fprintf(w, "%s: %s\n", headColor.Sprint(name), lint.Summary(diags))
	if len(diags) == 0 {
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Line", "Severity", "Message"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})
	for _, d := range diags {
		table.Append([]string{strconv.Itoa(d.Line), severityColor(d.Severity).Sprint(d.Severity), d.Message})
	}

	errs, warns := lint.Count(diags)
	table.SetFooter([]string{"", fmt.Sprintf("%d errors", errs), fmt.Sprintf("%d warnings", warns)})
	table.Render()
}

// cmdHighlight prints a file with terminal colours, or as HTML markup with --html
func cmdHighlight(args []string) error {
	asHTML, positional, err := highlightFlags(args)
	if err != nil {
		return err
	}
	if len(positional) < 1 {
		return fmt.Errorf("file required (e.g., codelearn highlight solution.js)")
	}

	code, err := readSource(positional[0])
	if err != nil {
		return err
	}

	if asHTML {
		fmt.Println(highlight.Render(code))
		return nil
	}
	fmt.Println(highlight.RenderANSI(code))
	return nil
}

func highlightFlags(args []string) (bool, []string, error) {
	fs := newFlagSet("highlight")
	asHTML := fs.Bool("html", false, "print HTML markup instead of terminal colours")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return false, nil, err
	}
	return *asHTML, positional, nil
}

// readSource reads a file, or stdin when path is "-"
func readSource(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
