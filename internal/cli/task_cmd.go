package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/alexanderramin/todod/internal/cli/formatter"
	"github.com/alexanderramin/todod/internal/client"
	"github.com/alexanderramin/todod/internal/domain"
	"github.com/spf13/cobra"
)

const clientTimeout = 10 * time.Second

type taskOpts struct {
	json bool
}

func newTaskCmd(app *App) *cobra.Command {
	opts := &taskOpts{}
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks"},
		Short:   "Manage tasks on a running server",
	}
	cmd.PersistentFlags().BoolVar(&opts.json, "json", false, "Print raw JSON instead of a table")

	cmd.AddCommand(
		newTaskAddCmd(app, opts),
		newTaskListCmd(app, opts),
		newTaskShowCmd(app, opts),
		newTaskUpdateCmd(app, opts),
		newTaskRemoveCmd(app, opts),
	)
	return cmd
}

func (a *App) client() *client.Client {
	return client.New(a.Config.Server, clientTimeout)
}

func newTaskAddCmd(app *App, opts *taskOpts) *cobra.Command {
	var req client.TaskRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Description = descriptionFlag(cmd)
			td, err := app.client().Create(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("creating task: %w", err)
			}
			return printTodo(cmd.OutOrStdout(), td, opts.json)
		},
	}

	addTaskFlags(cmd, &req)
	return cmd
}

func newTaskListCmd(app *App, opts *taskOpts) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			todos, err := app.client().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing tasks: %w", err)
			}
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), todos)
			}
			_, err = io.WriteString(cmd.OutOrStdout(), formatter.FormatTodoList(todos))
			return err
		},
	}
}

func newTaskShowCmd(app *App, opts *taskOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			td, err := app.client().Get(cmd.Context(), id)
			if err != nil {
				return taskError(id, err)
			}
			return printTodo(cmd.OutOrStdout(), td, opts.json)
		},
	}
}

func newTaskUpdateCmd(app *App, opts *taskOpts) *cobra.Command {
	var req client.TaskRequest

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Replace a task's title, description and completed flag",
		Long: "Replace a task. The update is a full replacement: an omitted\n" +
			"--description clears the description and an omitted --completed\n" +
			"marks the task open.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			req.Description = descriptionFlag(cmd)
			td, err := app.client().Update(cmd.Context(), id, req)
			if err != nil {
				return taskError(id, err)
			}
			return printTodo(cmd.OutOrStdout(), td, opts.json)
		},
	}

	addTaskFlags(cmd, &req)
	return cmd
}

func newTaskRemoveCmd(app *App, opts *taskOpts) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			msg, err := app.client().Delete(cmd.Context(), id)
			if err != nil {
				return taskError(id, err)
			}
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"message": msg})
			}
			_, err = io.WriteString(cmd.OutOrStdout(), formatter.FormatDeleted(id, msg))
			return err
		},
	}
}

func addTaskFlags(cmd *cobra.Command, req *client.TaskRequest) {
	cmd.Flags().StringVar(&req.Title, "title", "", "Task title")
	cmd.Flags().String("description", "", "Task description")
	cmd.Flags().BoolVar(&req.Completed, "completed", false, "Mark the task as completed")
	_ = cmd.MarkFlagRequired("title")
}

// descriptionFlag distinguishes an omitted --description (null) from an
// explicitly empty one.
func descriptionFlag(cmd *cobra.Command) *string {
	f := cmd.Flags().Lookup("description")
	if f == nil || !f.Changed {
		return nil
	}
	v := f.Value.String()
	return &v
}

func parseTaskID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q: must be an integer", s)
	}
	return id, nil
}

func taskError(id int64, err error) error {
	if errors.Is(err, client.ErrNotFound) {
		return fmt.Errorf("task %d: %w", id, client.ErrNotFound)
	}
	return fmt.Errorf("task %d: %w", id, err)
}

func printTodo(w io.Writer, td *domain.Todo, asJSON bool) error {
	if asJSON {
		return writeJSON(w, td)
	}
	_, err := io.WriteString(w, formatter.FormatTodo(td))
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
