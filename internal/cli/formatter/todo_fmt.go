package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/todod/internal/domain"
)

const titleWidth = 48

// FormatTodoList renders tasks as a table, or a hint when there are none.
func FormatTodoList(todos []*domain.Todo) string {
	if len(todos) == 0 {
		return Dim("No tasks yet. Add one with: todod task add --title \"...\"") + "\n"
	}

	rows := make([][]string, 0, len(todos))
	done := 0
	for _, td := range todos {
		if td.Completed {
			done++
		}
		rows = append(rows, []string{
			strconv.FormatInt(td.ID, 10),
			CompletedPill(td.Completed),
			Truncate(td.Title, titleWidth),
			Dim(Truncate(domain.StrFromPtr(td.Description), titleWidth)),
		})
	}

	var b strings.Builder
	b.WriteString(Header("Tasks"))
	b.WriteString("\n\n")
	b.WriteString(RenderTable([]string{"ID", "STATUS", "TITLE", "DESCRIPTION"}, rows))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%d tasks, %d done", len(todos), done)))
	b.WriteString("\n")
	return b.String()
}

// FormatTodo renders a single task as a boxed detail view.
func FormatTodo(td *domain.Todo) string {
	desc := Dim("(none)")
	if td.Description != nil {
		desc = StyleFg.Render(*td.Description)
	}

	title := td.Title
	if title == "" {
		title = Dim("(untitled)")
	}

	lines := []string{
		Bold("Title:       ") + title,
		Bold("Description: ") + desc,
		Bold("Status:      ") + CompletedPill(td.Completed),
	}
	return RenderBox(fmt.Sprintf("Task #%d", td.ID), strings.Join(lines, "\n")) + "\n"
}

// FormatDeleted renders the confirmation for a removed task.
func FormatDeleted(id int64, message string) string {
	return StyleGreen.Render("✔ ") + fmt.Sprintf("%s (#%d)", message, id) + "\n"
}
