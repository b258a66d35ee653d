package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/todomvc/internal/app"
	"github.com/Makepad-fr/todomvc/internal/model"
	"github.com/Makepad-fr/todomvc/internal/persist"
	"github.com/Makepad-fr/todomvc/internal/tui"
)

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return usageErrorf("usage: todomvc %s", usage)
		}
		return nil
	}
}

func minArgs(n int, usage string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) < n {
			return usageErrorf("usage: todomvc %s", usage)
		}
		return nil
	}
}

// position turns a 1-based position argument into the ID of the item there.
func position(s *session, cmdName, arg string) (string, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return "", usageErrorf("%s: not a number: %s", cmdName, arg)
	}
	id := s.app.IDAt(n - 1)
	if id == "" {
		return "", usageErrorf("index out of range: have %d, got %d (run `todomvc ls` to see valid indexes)", s.app.Len(), n)
	}
	return id, nil
}

// apply dispatches in and reports a failed save as an error.
func apply(cmd *cobra.Command, s *session, in app.Intent) error {
	s.app.Dispatch(cmd.Context(), in)
	if err := s.app.LastSaveErr(); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

func newAddCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a new item (text can be multiple words)",
		Args:  minArgs(1, "add <text...>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session) error {
				if err := apply(cmd, s, app.AddTodo{Content: strings.Join(args, " ")}); err != nil {
					return err
				}
				ok(cmd.OutOrStdout(), "added")
				return nil
			})
		},
	}
}

func newListCommand(opts *RootOptions) *cobra.Command {
	var (
		filter string
		group  bool
	)
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items",
		Args:    exactArgs(0, "ls [--filter all|active|completed] [--group]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := model.ParseFilter(filter)
			if err != nil {
				return usageErrorf("%v", err)
			}
			return withSession(cmd, opts, func(s *session) error {
				s.app.Dispatch(cmd.Context(), app.ChangeFilter{Filter: f})

				done, active := s.app.CompletedCount(), s.app.ActiveCount()
				lines := []string{
					tui.Stats(done, active),
					mutedStyle.Render(tui.ProgressBar(done, done+active, 28)),
					"",
				}
				if group {
					lines = append(lines, groupLines(s.app.Shown())...)
				} else {
					lines = append(lines, flatLines(s.app.Shown())...)
				}
				lines = append(lines, "",
					fmt.Sprintf("%s   showing [%s]", tui.ItemsLeft(active), f),
					mutedStyle.Render("Tip: add with `todomvc add \"Buy milk\"`"),
				)
				fmt.Fprintln(cmd.OutOrStdout(), tui.Panel(lines))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "show all|active|completed items")
	cmd.Flags().BoolVar(&group, "group", false, "group output by active/completed")
	return cmd
}

func newDoneCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "done <index>",
		Aliases: []string{"toggle"},
		Short:   "Toggle completed for the item at a 1-based index",
		Args:    exactArgs(1, "done <index>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session) error {
				id, err := position(s, "done", args[0])
				if err != nil {
					return err
				}
				if err := apply(cmd, s, app.ToggleCompleted{ID: id}); err != nil {
					return err
				}
				ok(cmd.OutOrStdout(), "toggled")
				return nil
			})
		},
	}
}

func newRemoveCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <index>",
		Short: "Remove the item at a 1-based index",
		Args:  exactArgs(1, "rm <index>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session) error {
				id, err := position(s, "rm", args[0])
				if err != nil {
					return err
				}
				if err := apply(cmd, s, app.Destroy{ID: id}); err != nil {
					return err
				}
				ok(cmd.OutOrStdout(), "removed")
				return nil
			})
		},
	}
}

func newEditCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <index> <text...>",
		Short: "Replace the text of the item at a 1-based index",
		Args:  minArgs(2, "edit <index> <text...>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session) error {
				id, err := position(s, "edit", args[0])
				if err != nil {
					return err
				}
				if err := apply(cmd, s, app.UpdateContent{ID: id, Content: strings.Join(args[1:], " ")}); err != nil {
					return err
				}
				ok(cmd.OutOrStdout(), "updated")
				return nil
			})
		},
	}
}

func newToggleAllCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle-all",
		Short: "Complete every item, or reopen them all if all are completed",
		Args:  exactArgs(0, "toggle-all"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session) error {
				if err := apply(cmd, s, app.ToggleAllCompleted{}); err != nil {
					return err
				}
				if s.app.AllCompleted() {
					ok(cmd.OutOrStdout(), "all completed")
				} else {
					ok(cmd.OutOrStdout(), "all active")
				}
				return nil
			})
		},
	}
}

func newClearCompletedCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-completed",
		Short: "Remove every completed item",
		Args:  exactArgs(0, "clear-completed"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session) error {
				n := s.app.CompletedCount()
				if err := apply(cmd, s, app.ClearCompleted{}); err != nil {
					return err
				}
				ok(cmd.OutOrStdout(), fmt.Sprintf("cleared %d", n))
				return nil
			})
		},
	}
}

func newExportCommand(opts *RootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the stored list as json or yaml",
		Args:  exactArgs(0, "export [--format json|yaml]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "yaml" {
				return usageErrorf("export: unknown format %q: must be json or yaml", format)
			}
			return withSession(cmd, opts, func(s *session) error {
				var (
					b   []byte
					err error
				)
				if format == "yaml" {
					b, err = yaml.Marshal(s.app.Items())
				} else {
					b, err = persist.Encode(s.app.Items())
				}
				if err != nil {
					return fmt.Errorf("export: %w", err)
				}
				if len(b) > 0 && b[len(b)-1] != '\n' {
					b = append(b, '\n')
				}
				_, err = cmd.OutOrStdout().Write(b)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format (json|yaml)")
	return cmd
}
