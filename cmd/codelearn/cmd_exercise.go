package main

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/felixgeelhaar/codelearn/internal/domain"
	"github.com/felixgeelhaar/codelearn/internal/tutorial"
)

// cmdExercise browses exercises on the running daemon
func cmdExercise(args []string) error {
	if len(args) < 1 {
		fmt.Println(`Exercise commands:

  codelearn exercise list   [--difficulty d] [--topic t]  List exercises
  codelearn exercise info   <id>                          Show exercise details
  codelearn exercise random [--difficulty d] [--topic t]  Pick a random exercise`)
		return nil
	}

	switch args[0] {
	case "list", "info", "random":
	default:
		return fmt.Errorf("unknown exercise command: %s", args[0])
	}

	query, positional, err := exerciseFlags(args[0], args[1:])
	if err != nil {
		return err
	}
	if args[0] == "info" && len(positional) < 1 {
		return fmt.Errorf("exercise ID required (e.g., codelearn exercise info 2)")
	}

	c, err := requireDaemon()
	if err != nil {
		return err
	}

	switch args[0] {
	case "list":
		return exerciseList(os.Stdout, c, query)
	case "info":
		return exerciseInfo(os.Stdout, c, positional[0])
	default:
		return exerciseRandom(os.Stdout, c, query)
	}
}

// exerciseFlags parses the flags of one exercise subcommand into a filter
// query. info takes no flags.
func exerciseFlags(sub string, args []string) (url.Values, []string, error) {
	fs := newFlagSet("exercise " + sub)
	var difficulty, topic string
	if sub != "info" {
		fs.StringVar(&difficulty, "difficulty", "", "beginner, intermediate, advanced or all")
		fs.StringVar(&topic, "topic", "", "topic name or all")
	}
	positional, err := parseArgs(fs, args)
	if err != nil {
		return nil, nil, err
	}

	q := url.Values{}
	if difficulty != "" {
		q.Set("difficulty", difficulty)
	}
	if topic != "" {
		q.Set("topic", topic)
	}
	return q, positional, nil
}

func exerciseList(w io.Writer, c *client, query url.Values) error {
	var result struct {
		Exercises []*domain.Exercise `json:"exercises"`
		Count     int                `json:"count"`
	}
	if err := c.get("/v1/exercises", query, &result); err != nil {
		return fmt.Errorf("get exercises: %w", err)
	}

	if result.Count == 0 {
		fmt.Fprintln(w, "No exercises match the filter")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Title", "Difficulty", "Topic", "Points", "Time"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	for _, ex := range result.Exercises {
		table.Append([]string{ex.ID, ex.Title, string(ex.Difficulty), ex.Topic, strconv.Itoa(ex.Points), ex.EstimatedTime})
	}
	table.Render()

	fmt.Fprintf(w, "\nUse 'codelearn exercise info <id>' for details\n")
	return nil
}

func exerciseInfo(w io.Writer, c *client, id string) error {
	var ex domain.Exercise
	if err := c.get("/v1/exercises/"+url.PathEscape(id), nil, &ex); err != nil {
		return err
	}
	printExercise(w, &ex)
	return nil
}

func exerciseRandom(w io.Writer, c *client, query url.Values) error {
	var ex domain.Exercise
	if err := c.get("/v1/exercises/random", query, &ex); err != nil {
		return err
	}
	printExercise(w, &ex)
	return nil
}

func printExercise(w io.Writer, ex *domain.Exercise) {
	fmt.Fprintf(w, "%s\n\n", headColor.Sprint("Exercise: "+ex.Title))
	fmt.Fprintf(w, "ID:         %s\n", ex.ID)
	fmt.Fprintf(w, "Difficulty: %s\n", ex.Difficulty)
	fmt.Fprintf(w, "Topic:      %s\n", ex.Topic)
	fmt.Fprintf(w, "Points:     %d\n", ex.Points)
	fmt.Fprintf(w, "Time:       %s\n", ex.EstimatedTime)
	fmt.Fprintf(w, "\nDescription:\n%s\n", ex.Description)
	fmt.Fprintf(w, "\nStarter code:\n%s\n", ex.StarterCode)

	fmt.Fprintf(w, "\n%s:\n", ex.TestCaseLabel())
	for _, tc := range ex.TestCases {
		fmt.Fprintf(w, "  %s => %s\n", tc.Input, tc.ExpectedOutput)
	}
}

// cmdTutorial shows tutorial steps from the running daemon
func cmdTutorial(args []string) error {
	if len(args) < 1 || args[0] != "show" {
		fmt.Println(`Tutorial commands:

  codelearn tutorial show [<id>] [<step>]  Show a tutorial step (steps count from 1)`)
		return nil
	}

	positional, err := parseArgs(newFlagSet("tutorial show"), args[1:])
	if err != nil {
		return err
	}

	c, err := requireDaemon()
	if err != nil {
		return err
	}

	id, step := "", 1
	for _, arg := range positional {
		if n, err := strconv.Atoi(arg); err == nil {
			step = n
			continue
		}
		id = arg
	}
	if id == "" {
		var list struct {
			Tutorials []struct {
				ID string `json:"id"`
			} `json:"tutorials"`
		}
		if err := c.get("/v1/tutorials", nil, &list); err != nil {
			return fmt.Errorf("get tutorials: %w", err)
		}
		if len(list.Tutorials) == 0 {
			return fmt.Errorf("no tutorials available")
		}
		id = list.Tutorials[0].ID
	}

	var t domain.Tutorial
	if err := c.get("/v1/tutorials/"+url.PathEscape(id), nil, &t); err != nil {
		return err
	}
	printTutorialStep(os.Stdout, &t, step-1)
	return nil
}

func printTutorialStep(w io.Writer, t *domain.Tutorial, index int) {
	cur := tutorial.Cursor{Index: t.Clamp(index)}
	step, ok := cur.Step(t)
	if !ok {
		fmt.Fprintf(w, "%s has no steps\n", t.Title)
		return
	}

	fmt.Fprintf(w, "%s\n", headColor.Sprint(t.Title))
	fmt.Fprintf(w, "%s %s %.0f%%\n\n", cur.Label(t), renderProgressBar(cur.Progress(t), 20), cur.Progress(t))
	fmt.Fprintf(w, "%s\n\n%s\n", okColor.Sprint(step.Title), step.Content)
	if step.HasCode() {
		fmt.Fprintf(w, "\n%s\n", step.Code)
	}
	if step.HasHint() {
		fmt.Fprintf(w, "\n%s %s\n", dimColor.Sprint("Hint:"), step.Hint)
	}
}
