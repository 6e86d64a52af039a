package model

// Namespace is the key the todo list is persisted under.
const Namespace = "todos"

// Todo is a single task record.
// Field names are part of the stored format; keep them stable.
type Todo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	IsCompleted bool   `json:"isCompleted"`
	IsSelected  bool   `json:"isSelected"`
}
