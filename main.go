package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"kanbot/internal/bot"
	"kanbot/internal/config"
	"kanbot/internal/database"
	"kanbot/internal/logging"
	"kanbot/internal/services/admin"
	"kanbot/internal/services/board"
	"kanbot/internal/services/task"
)

func main() {
	grantAdmin := flag.String("grant-admin", "", "grant the admin flag to a user ID and exit")
	revokeAdmin := flag.String("revoke-admin", "", "revoke the admin flag from a user ID and exit")
	flag.Parse()

	// .env is optional; a missing file is not an error
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logging.Init(cfg.LogPath); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}

	ctx := context.Background()
	db, err := database.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	repo := database.NewRepository(db, cfg.DatabasePath)
	adminService := admin.NewService(repo, cfg.BackupDir)

	// Granting the admin flag is an out-of-band action for the operator,
	// not something exposed through the bot.
	if *grantAdmin != "" || *revokeAdmin != "" {
		if err := manageAdmin(ctx, adminService, *grantAdmin, *revokeAdmin); err != nil {
			log.Fatalf("Failed to change admin flag: %v", err)
		}
		return
	}

	token := os.Getenv("DISCORD_TOKEN")
	if token == "" {
		log.Fatal("DISCORD_TOKEN is not set")
	}

	boardService := board.NewService(repo)
	taskService := task.NewService(repo)

	b, err := bot.New(token, cfg.GuildID, boardService, taskService, adminService)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}
	if err := b.Start(); err != nil {
		log.Fatalf("Failed to start bot: %v", err)
	}
	defer b.Stop()

	fmt.Println("kanbot is running, press Ctrl+C to exit")
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func manageAdmin(ctx context.Context, svc admin.Service, grant, revoke string) error {
	if grant != "" {
		if err := svc.SetAdmin(ctx, grant, true); err != nil {
			return err
		}
		fmt.Printf("granted admin to %s\n", grant)
	}
	if revoke != "" {
		if err := svc.SetAdmin(ctx, revoke, false); err != nil {
			return err
		}
		fmt.Printf("revoked admin from %s\n", revoke)
	}
	return nil
}
