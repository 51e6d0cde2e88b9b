package bot

import "github.com/bwmarrin/discordgo"

// commands returns the slash command tree the bot registers on startup
func commands() []*discordgo.ApplicationCommand {
	statusChoices := []*discordgo.ApplicationCommandOptionChoice{
		{Name: "todo", Value: "todo"},
		{Name: "doing", Value: "doing"},
		{Name: "done", Value: "done"},
	}
	visibilityChoices := []*discordgo.ApplicationCommandOptionChoice{
		{Name: "personal", Value: "personal"},
		{Name: "public", Value: "public"},
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        "ping",
			Description: "Check the bot's latency",
		},
		{
			Name:        "board",
			Description: "Manage task boards",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "create",
					Description: "Create a new board",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "name", Description: "Board name", Type: discordgo.ApplicationCommandOptionString, Required: true},
						{Name: "description", Description: "Board description", Type: discordgo.ApplicationCommandOptionString},
						{Name: "visibility", Description: "Board visibility", Type: discordgo.ApplicationCommandOptionString, Choices: visibilityChoices},
					},
				},
				{
					Name:        "list",
					Description: "List your boards and all public boards",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        "delete",
					Description: "Delete a board and all its tasks",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "id", Description: "Board ID", Type: discordgo.ApplicationCommandOptionInteger, Required: true},
					},
				},
			},
		},
		{
			Name:        "task",
			Description: "Manage tasks",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "add",
					Description: "Add a task to a board",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "board", Description: "Board ID", Type: discordgo.ApplicationCommandOptionInteger, Required: true},
						{Name: "title", Description: "Task title", Type: discordgo.ApplicationCommandOptionString, Required: true},
						{Name: "description", Description: "Task description", Type: discordgo.ApplicationCommandOptionString},
						{Name: "priority", Description: "Task priority", Type: discordgo.ApplicationCommandOptionInteger},
					},
				},
				{
					Name:        "list",
					Description: "List the tasks on a board",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "board", Description: "Board ID", Type: discordgo.ApplicationCommandOptionInteger, Required: true},
						{Name: "status", Description: "Only show this status", Type: discordgo.ApplicationCommandOptionString, Choices: statusChoices},
						{Name: "sort", Description: "Sort column", Type: discordgo.ApplicationCommandOptionString},
						{Name: "order", Description: "asc or desc", Type: discordgo.ApplicationCommandOptionString},
					},
				},
				{
					Name:        "move",
					Description: "Move a task to another status",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "id", Description: "Task ID", Type: discordgo.ApplicationCommandOptionInteger, Required: true},
						{Name: "status", Description: "New status", Type: discordgo.ApplicationCommandOptionString, Required: true, Choices: statusChoices},
					},
				},
				{
					Name:        "delete",
					Description: "Delete a task",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "id", Description: "Task ID", Type: discordgo.ApplicationCommandOptionInteger, Required: true},
					},
				},
				{
					Name:        "counts",
					Description: "Show task counts by status for a board",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "board", Description: "Board ID", Type: discordgo.ApplicationCommandOptionInteger, Required: true},
					},
				},
			},
		},
		{
			Name:        "stats",
			Description: "Per-user usage statistics (admin only)",
		},
		{
			Name:        "backup",
			Description: "Write a backup of the database (admin only)",
		},
	}
}
