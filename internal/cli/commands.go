package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/taskks/internal/tui"
	"github.com/Makepad-fr/taskks/internal/ui"
)

func newAddCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "add <title...>",
		Short:   "Add a task (title can be multiple words)",
		Example: `  taskks add "Buy milk"`,
		Args:    usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			todo, ok := e.store.Add(strings.Join(args, " "))
			if !ok {
				return usagef("add: empty title")
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("added %d. %s", e.store.Len(), todo.Title))
			return nil
		},
	}
}

func newDoneCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "done <ref>",
		Short:   "Toggle completion of one task",
		Example: "  taskks done 2",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveRef(e.store, args[0])
			if err != nil {
				return err
			}
			e.store.ToggleCompleted(id)
			ui.OK(cmd.OutOrStdout(), "toggled")
			return nil
		},
	}
}

func newRemoveCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <ref>",
		Short:   "Remove one task",
		Example: "  taskks rm 3",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveRef(e.store, args[0])
			if err != nil {
				return err
			}
			e.store.Remove(id)
			ui.OK(cmd.OutOrStdout(), "removed")
			return nil
		},
	}
}

func newRenameCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "rename <ref> <title...>",
		Short:   "Change the title of a task",
		Example: `  taskks rename 1 "Buy oat milk"`,
		Args:    usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveRef(e.store, args[0])
			if err != nil {
				return err
			}
			if !e.store.Rename(id, strings.Join(args[1:], " ")) {
				return usagef("rename: empty title")
			}
			ui.OK(cmd.OutOrStdout(), "renamed")
			return nil
		},
	}
}

func newSelectCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "select <ref> [<ref>]",
		Short: "Toggle selection; a second ref shift-selects the range from the first",
		Example: `  taskks select 2
  taskks select 2 4`,
		Args: usageArgs(cobra.RangeArgs(1, 2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]string, 0, len(args))
			for _, ref := range args {
				id, err := resolveRef(e.store, ref)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}
			e.store.ToggleSelected(ids[0], false)
			if len(ids) == 2 {
				e.store.ToggleSelected(ids[1], true)
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("%d selected", len(e.store.Selected())))
			return nil
		},
	}
}

func newSelectAllCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "select-all",
		Short: "Select every task, or clear the selection if all are selected",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			e.store.ToggleSelectAll()
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("%d selected", len(e.store.Selected())))
			return nil
		},
	}
}

func newRemoveSelectedCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "rm-selected",
		Short: "Remove every selected task",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			n := e.store.RemoveSelected()
			if n == 0 {
				return usagef("nothing selected")
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("removed %d", n))
			return nil
		},
	}
}

func newDoneSelectedCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "done-selected",
		Short: "Toggle completion of every selected task",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			n := e.store.ToggleCompleteSelected()
			if n == 0 {
				return usagef("nothing selected")
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("toggled %d", n))
			return nil
		},
	}
}

func newDoneAllCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "done-all",
		Short: "Complete every task, or uncomplete all if all are complete",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if e.store.Len() == 0 {
				return usagef("no tasks")
			}
			e.store.ToggleCompleteAll()
			msg := "uncompleted all"
			if e.store.AllCompleted() {
				msg = "completed all"
			}
			ui.OK(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

func newProgressCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Print the completed percentage",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !e.store.HasProgress() {
				ui.Hint(cmd.OutOrStdout(), "no tasks")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.0f%%\n", e.store.Progress())
			return nil
		},
	}
}

func newTUICommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive list (default with no subcommand)",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(*cobra.Command, []string) error {
			return runTUI(e)
		},
	}
}

func runTUI(e *env) error {
	e.logger.Debug("interactive view started", "count", e.store.Len())
	return tui.Run(e.store, tui.Options{ProgressWidth: e.cfg.UI.ProgressWidth})
}
