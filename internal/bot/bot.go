// Package bot is the chat-platform surface: it registers the slash commands
// and adapts each interaction onto a service call. All authorization and
// validation lives below the services; handlers only parse and render.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"kanbot/internal/services/admin"
	"kanbot/internal/services/board"
	"kanbot/internal/services/task"
)

// interactionTimeout bounds the service work done for one interaction.
// Discord expects an initial response within three seconds.
const interactionTimeout = 3 * time.Second

// Bot wires a Discord session to the task-tracking services
type Bot struct {
	session *discordgo.Session
	guildID string

	boards board.Service
	tasks  task.Service
	admins admin.Service

	registered []*discordgo.ApplicationCommand
}

// New creates a Bot for the given token. guildID may be empty to register
// the commands globally.
func New(token, guildID string, boards board.Service, tasks task.Service, admins admin.Service) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	b := &Bot{
		session: session,
		guildID: guildID,
		boards:  boards,
		tasks:   tasks,
		admins:  admins,
	}

	session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		slog.Info("logged in", "user", r.User.Username, "id", r.User.ID)
	})
	session.AddHandler(b.handleInteraction)

	return b, nil
}

// Start opens the gateway connection and registers the slash commands
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open gateway connection: %w", err)
	}

	for _, cmd := range commands() {
		registered, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.guildID, cmd)
		if err != nil {
			return fmt.Errorf("failed to register command %s: %w", cmd.Name, err)
		}
		b.registered = append(b.registered, registered)
	}
	slog.Info("slash commands registered", "count", len(b.registered))
	return nil
}

// Stop removes the registered commands and closes the session
func (b *Bot) Stop() {
	for _, cmd := range b.registered {
		if err := b.session.ApplicationCommandDelete(b.session.State.User.ID, b.guildID, cmd.ID); err != nil {
			slog.Error("failed to delete command", "command", cmd.Name, "error", err)
		}
	}
	if err := b.session.Close(); err != nil {
		slog.Error("failed to close session", "error", err)
	}
}

// requester extracts the acting identity from an interaction. Guild
// interactions carry a member, direct messages a user.
func requester(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()

	data := i.ApplicationCommandData()
	var reply string
	switch data.Name {
	case "ping":
		reply = fmt.Sprintf("🏓 Pong! Latency: `%dms`", s.HeartbeatLatency().Milliseconds())
	case "board":
		reply = b.handleBoard(ctx, i, data)
	case "task":
		reply = b.handleTask(ctx, i, data)
	case "stats":
		reply = b.handleStats(ctx, i)
	case "backup":
		reply = b.handleBackup(ctx, i)
	default:
		return
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: reply,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		slog.Error("failed to respond to interaction", "command", data.Name, "error", err)
	}
}
