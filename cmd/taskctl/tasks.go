package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/validation"
	"taskboard/internal/app"
	"taskboard/internal/core/domain"
)

var (
	listQuery  dto.TaskQuery
	listLocale string

	taskCategory    string
	taskPriority    string
	taskStatus      string
	taskDeadline    string
	taskDescription string
	taskTitle       string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		locale, err := language.Parse(listLocale)
		if err != nil {
			return fmt.Errorf("invalid locale %q: %w", listLocale, err)
		}
		opts, err := validation.BuildViewOptions(listQuery, locale)
		if err != nil {
			return err
		}

		return withSignedIn(cmd, func(ctx context.Context, a *app.App, _ domain.Identity) error {
			printTasks(cmd.OutOrStdout(), a.Tasks.View(opts), time.Now().In(a.Config.Location), a.Config.Location)
			return nil
		})
	},
}

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a new task",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSignedIn(cmd, func(ctx context.Context, a *app.App, _ domain.Identity) error {
			input := domain.CreateTaskInput{
				Title:    strings.Join(args, " "),
				Category: domain.Category(taskCategory),
				Priority: domain.Priority(taskPriority),
				Status:   domain.TaskStatus(taskStatus),
			}
			if taskDeadline != "" {
				deadline, err := validation.ParseDeadline(taskDeadline, a.Config.Location)
				if err != nil {
					return fmt.Errorf("invalid deadline %q", taskDeadline)
				}
				input.Deadline = &deadline
			}
			if taskDescription != "" {
				input.Description = &taskDescription
			}

			task, err := a.Tasks.Create(ctx, input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", task.ID)
			return nil
		})
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change fields of a task",
	Long:  `Only the flags given are changed. An empty --deadline or --description clears the field.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSignedIn(cmd, func(ctx context.Context, a *app.App, _ domain.Identity) error {
			patch, err := buildPatch(cmd, a.Config.Location)
			if err != nil {
				return err
			}
			task, err := a.Tasks.Update(ctx, args[0], patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", task.ID)
			return nil
		})
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSignedIn(cmd, func(ctx context.Context, a *app.App, _ domain.Identity) error {
			if err := a.Tasks.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		})
	},
}

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Check deadlines once and print the reminders raised",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSignedIn(cmd, func(ctx context.Context, a *app.App, _ domain.Identity) error {
			if _, err := a.Inbox.RequestPermission(ctx, true); err != nil {
				return err
			}
			raised := a.Notifier.Check(ctx)
			if len(raised) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing due tomorrow")
				return nil
			}
			for _, n := range raised {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", n.Title, n.Body)
			}
			return nil
		})
	},
}

func buildPatch(cmd *cobra.Command, loc *time.Location) (domain.TaskPatch, error) {
	var patch domain.TaskPatch
	flags := cmd.Flags()

	if flags.Changed("title") {
		patch.Title = &taskTitle
	}
	if flags.Changed("category") {
		category := domain.Category(taskCategory)
		patch.Category = &category
	}
	if flags.Changed("priority") {
		priority := domain.Priority(taskPriority)
		patch.Priority = &priority
	}
	if flags.Changed("status") {
		status := domain.TaskStatus(taskStatus)
		patch.Status = &status
	}
	if flags.Changed("deadline") {
		patch.DeadlineSet = true
		if strings.TrimSpace(taskDeadline) != "" {
			deadline, err := validation.ParseDeadline(taskDeadline, loc)
			if err != nil {
				return domain.TaskPatch{}, fmt.Errorf("invalid deadline %q", taskDeadline)
			}
			patch.Deadline = &deadline
		}
	}
	if flags.Changed("description") {
		patch.DescriptionSet = true
		if strings.TrimSpace(taskDescription) != "" {
			patch.Description = &taskDescription
		}
	}
	return patch, nil
}

func printTasks(out io.Writer, tasks []domain.Task, now time.Time, loc *time.Location) {
	if len(tasks) == 0 {
		fmt.Fprintln(out, "no tasks")
		return
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tPRIORITY\tSTATUS\tDEADLINE\tFLAGS")
	for _, task := range tasks {
		deadline := "-"
		if task.Deadline != nil {
			deadline = task.Deadline.In(loc).Format("02/01/2006")
		}
		var flags []string
		if task.IsOverdue(now) {
			flags = append(flags, "overdue")
		}
		if task.IsDueSoon(now) {
			flags = append(flags, "due soon")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			task.ID,
			task.Title,
			task.Category.Label(),
			task.Priority.Label(),
			task.Status.Label(),
			deadline,
			strings.Join(flags, ","),
		)
	}
	_ = w.Flush()
}

func init() {
	listCmd.Flags().StringVarP(&listQuery.Search, "search", "q", "", "match title or description")
	listCmd.Flags().StringVar(&listQuery.View, "view", "", "primary category (all, academic, organization, thesis, work)")
	listCmd.Flags().StringVar(&listQuery.Status, "status", "", "status filter")
	listCmd.Flags().StringVar(&listQuery.Priority, "priority", "", "priority filter")
	listCmd.Flags().StringVar(&listQuery.Category, "category", "", "category filter")
	listCmd.Flags().StringVar(&listQuery.Sort, "sort", "", "newest, deadline, priority or title")
	listCmd.Flags().StringVar(&listLocale, "locale", "en", "collation locale for title sort")

	addCmd.Flags().StringVar(&taskCategory, "category", "", "academic, organization, thesis or work")
	addCmd.Flags().StringVar(&taskPriority, "priority", string(domain.PriorityMedium), "high, medium or low")
	addCmd.Flags().StringVar(&taskStatus, "status", string(domain.TaskStatusNotStarted), "not_started, in_progress or done")
	addCmd.Flags().StringVar(&taskDeadline, "deadline", "", "YYYY-MM-DD or RFC 3339")
	addCmd.Flags().StringVar(&taskDescription, "description", "", "free text")
	_ = addCmd.MarkFlagRequired("category")

	updateCmd.Flags().StringVar(&taskTitle, "title", "", "new title")
	updateCmd.Flags().StringVar(&taskCategory, "category", "", "academic, organization, thesis or work")
	updateCmd.Flags().StringVar(&taskPriority, "priority", "", "high, medium or low")
	updateCmd.Flags().StringVar(&taskStatus, "status", "", "not_started, in_progress or done")
	updateCmd.Flags().StringVar(&taskDeadline, "deadline", "", "YYYY-MM-DD or RFC 3339, empty to clear")
	updateCmd.Flags().StringVar(&taskDescription, "description", "", "free text, empty to clear")
}
