package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/taskks/internal/model"
	"github.com/Makepad-fr/taskks/internal/todolist"
	"github.com/Makepad-fr/taskks/internal/ui"
)

func newListCommand(e *env) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:     "ls",
		Short:   "List tasks",
		Example: "  taskks ls --search milk\n  taskks --group ls",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			e.store.SetSearch(search)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Panel(listLines(e.store, e.cfg.UI.Group, e.cfg.UI.ProgressWidth)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "only show tasks whose title contains this text")
	return cmd
}

func listLines(s *todolist.Store, group bool, width int) []string {
	t := ui.Current()
	done, pending := s.Stats()
	lines := []string{ui.Header(done, pending)}

	if s.Len() == 0 {
		lines = append(lines, "", t.Muted.Render("No Todos"), "")
		lines = append(lines, t.Muted.Render(`Tip: add with `+"`taskks add \"Buy milk\"`"))
		return lines
	}

	completeAll := "done-all completes all"
	if s.AllCompleted() {
		completeAll = "done-all uncompletes all"
	}
	lines = append(lines,
		t.Muted.Render(ui.ProgressBar(s.Progress(), width)),
		fmt.Sprintf("%s %d selected  %s", ui.SelectAllBox(s.AllChecked(), s.Indeterminate()), len(s.Selected()), t.Help.Render(completeAll)),
	)
	if q := s.Search(); q != "" {
		lines = append(lines, t.Accent.Render("/ "+q))
	}
	lines = append(lines, "")

	pos := map[string]int{}
	for i, todo := range s.Todos() {
		pos[todo.ID] = i + 1
	}
	visible := s.Filtered()
	if group {
		lines = append(lines, groupLines(visible, pos)...)
	} else {
		lines = append(lines, flatLines(visible, pos)...)
	}
	return lines
}

// flatLines numbers each todo by its position in the full list so the
// number can be passed back as a ref.
func flatLines(todos []model.Todo, pos map[string]int) []string {
	if len(todos) == 0 {
		return []string{ui.Current().Muted.Render("no matches")}
	}
	out := make([]string, 0, len(todos))
	for _, todo := range todos {
		out = append(out, ui.TodoLine(pos[todo.ID], todo))
	}
	return out
}

func groupLines(todos []model.Todo, pos map[string]int) []string {
	t := ui.Current()
	var pend, done []model.Todo
	for _, todo := range todos {
		if todo.IsCompleted {
			done = append(done, todo)
		} else {
			pend = append(pend, todo)
		}
	}
	section := func(title string, items []model.Todo) []string {
		lines := []string{t.Accent.Render(title)}
		if len(items) == 0 {
			return append(lines, t.Muted.Render("(none)"))
		}
		return append(lines, flatLines(items, pos)...)
	}
	lines := section("Pending", pend)
	lines = append(lines, "")
	return append(lines, section("Done", done)...)
}
