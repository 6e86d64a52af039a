package ui

import (
	"fmt"

	"github.com/Makepad-fr/taskks/internal/model"
)

const maxTitle = 80

// Truncate shortens s to n runes with a trailing ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 3 || len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// SelectAllBox is the tri-state select-all indicator.
func SelectAllBox(allChecked, indeterminate bool) string {
	t := Current()
	switch {
	case indeterminate:
		return t.BoxPartial
	case allChecked:
		return t.BoxChecked
	default:
		return t.BoxUnchecked
	}
}

// TodoLine renders one todo: 1-based position, selection box, completion mark and title.
func TodoLine(n int, todo model.Todo) string {
	t := Current()
	box := t.Muted.Render(t.BoxUnchecked)
	if todo.IsSelected {
		box = t.Accent.Render(t.BoxChecked)
	}
	mark := t.Pending.Render(t.SymPending)
	title := Truncate(todo.Title, maxTitle)
	if todo.IsCompleted {
		mark = t.Success.Render(t.SymDone)
		title = t.Done.Render(title)
	}
	return fmt.Sprintf("%s %s %s %s", t.Muted.Render(fmt.Sprintf("%2d.", n)), box, mark, title)
}

// Header is the title line with done / pending / total counters.
func Header(done, pending int) string {
	t := Current()
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Taskks"),
		t.Success.Render(t.SymDone), done,
		t.Pending.Render(t.SymPending), pending,
		t.Accent.Render("Total"), done+pending,
	)
}
