package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"kanbot/internal/database"
	"kanbot/internal/models"
	"kanbot/internal/services/admin"
	"kanbot/internal/services/board"
	"kanbot/internal/services/task"
)

// genericFailure is what users see for store failures. The log has details.
const genericFailure = "Sorry, that didn't work. Please try again later."

// options flattens a subcommand's options into a name lookup
func options(sub *discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	opts := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(sub.Options))
	for _, opt := range sub.Options {
		opts[opt.Name] = opt
	}
	return opts
}

func optString(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if opt, ok := opts[name]; ok {
		return opt.StringValue()
	}
	return ""
}

func optInt(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) int {
	if opt, ok := opts[name]; ok {
		return int(opt.IntValue())
	}
	return 0
}

func (b *Bot) handleBoard(ctx context.Context, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) string {
	user := requester(i)
	sub := data.Options[0]
	opts := options(sub)

	switch sub.Name {
	case "create":
		created, err := b.boards.CreateBoard(ctx, board.CreateBoardRequest{
			Requester:   user,
			Name:        optString(opts, "name"),
			Description: optString(opts, "description"),
			BoardType:   optString(opts, "visibility"),
		})
		if err != nil {
			return renderError(err)
		}
		return fmt.Sprintf("Created board **%s** (#%d, %s).", created.Name, created.ID, created.BoardType)

	case "list":
		boards, err := b.boards.ListBoards(ctx, user)
		if err != nil {
			return genericFailure
		}
		if len(boards) == 0 {
			return "No boards yet. Create one with `/board create`."
		}
		var sb strings.Builder
		sb.WriteString("**Boards**\n")
		for _, bd := range boards {
			fmt.Fprintf(&sb, "`#%d` %s (%s)\n", bd.ID, bd.Name, bd.BoardType)
		}
		return sb.String()

	case "delete":
		if err := b.boards.DeleteBoard(ctx, user, optInt(opts, "id")); err != nil {
			return renderError(err)
		}
		return "Board deleted, tasks included."
	}
	return genericFailure
}

func (b *Bot) handleTask(ctx context.Context, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) string {
	user := requester(i)
	sub := data.Options[0]
	opts := options(sub)

	switch sub.Name {
	case "add":
		created, err := b.tasks.CreateTask(ctx, task.CreateTaskRequest{
			Requester:   user,
			BoardID:     optInt(opts, "board"),
			Title:       optString(opts, "title"),
			Description: optString(opts, "description"),
			Priority:    optInt(opts, "priority"),
		})
		if err != nil {
			return renderError(err)
		}
		return fmt.Sprintf("Added task **%s** (#%d) to board #%d.", created.Title, created.ID, created.BoardID)

	case "list":
		tasks, err := b.tasks.ListTasks(ctx, user, optInt(opts, "board"), database.ListOptions{
			Status: optString(opts, "status"),
			SortBy: optString(opts, "sort"),
			Order:  optString(opts, "order"),
		})
		if err != nil {
			return genericFailure
		}
		if len(tasks) == 0 {
			return "No tasks found."
		}
		var sb strings.Builder
		sb.WriteString("**Tasks**\n")
		for _, tk := range tasks {
			fmt.Fprintf(&sb, "`#%d` [%s] %s\n", tk.ID, tk.Status, tk.Title)
		}
		return sb.String()

	case "move":
		if err := b.tasks.SetStatus(ctx, user, optInt(opts, "id"), optString(opts, "status")); err != nil {
			return renderError(err)
		}
		return "Task moved."

	case "delete":
		if err := b.tasks.DeleteTask(ctx, user, optInt(opts, "id")); err != nil {
			return renderError(err)
		}
		return "Task deleted."

	case "counts":
		counts, err := b.tasks.CountsByStatus(ctx, user, optInt(opts, "board"))
		if err != nil {
			return genericFailure
		}
		return fmt.Sprintf("todo: %d | doing: %d | done: %d",
			counts[models.StatusTodo], counts[models.StatusDoing], counts[models.StatusDone])
	}
	return genericFailure
}

func (b *Bot) handleStats(ctx context.Context, i *discordgo.InteractionCreate) string {
	stats, err := b.admins.UserStatistics(ctx, requester(i))
	if err != nil {
		return genericFailure
	}
	if len(stats) == 0 {
		return "Nothing to report."
	}
	var sb strings.Builder
	sb.WriteString("**User statistics**\n")
	for _, s := range stats {
		fmt.Fprintf(&sb, "<@%s>: %d personal / %d public boards, %d tasks (todo %d, doing %d, done %d)\n",
			s.UserID, s.PersonalBoards, s.PublicBoards, s.TotalTasks,
			s.TasksByStatus[models.StatusTodo], s.TasksByStatus[models.StatusDoing], s.TasksByStatus[models.StatusDone])
	}
	return sb.String()
}

func (b *Bot) handleBackup(ctx context.Context, i *discordgo.InteractionCreate) string {
	path, err := b.admins.Backup(ctx, requester(i))
	if err != nil {
		if errors.Is(err, admin.ErrAccessDenied) {
			return "You are not allowed to do that."
		}
		return genericFailure
	}
	return fmt.Sprintf("Backup written to `%s`.", path)
}

// renderError maps service errors to user-facing text. Denials and missing
// rows deliberately share one message.
func renderError(err error) string {
	switch {
	case errors.Is(err, board.ErrAccessDenied),
		errors.Is(err, task.ErrAccessDenied),
		errors.Is(err, board.ErrInvalidBoardID),
		errors.Is(err, task.ErrInvalidBoardID),
		errors.Is(err, task.ErrInvalidTaskID):
		return "Not found, or you are not allowed to do that."
	case errors.Is(err, database.ErrEmptyName),
		errors.Is(err, database.ErrEmptyTitle),
		errors.Is(err, database.ErrInvalidStatus),
		errors.Is(err, database.ErrInvalidBoardType),
		errors.Is(err, database.ErrNoFields):
		return "Invalid input: " + userMessage(err)
	default:
		return genericFailure
	}
}

// userMessage strips the wrapping chain down to the sentinel's text
func userMessage(err error) string {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err.Error()
		}
		err = unwrapped
	}
}
