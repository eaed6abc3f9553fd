// Command todoapp runs the personal todo web application.
package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nhle/todoapp/internal/auth"
	"github.com/nhle/todoapp/internal/model"
	"github.com/nhle/todoapp/internal/service"
	"github.com/nhle/todoapp/internal/store"
	"github.com/nhle/todoapp/internal/view"
	"github.com/nhle/todoapp/internal/web"
)

func main() {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to config file")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "todoapp",
	})

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("loading config", "error", err)
	}

	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		logger.Fatal("opening store", "path", cfg.Database.Path, "error", err)
	}
	defer st.Close()

	sessions := auth.NewStoreSessions(st, time.Duration(cfg.Auth.SessionTTLHours)*time.Hour)
	guard := auth.NewGuard(sessions)
	tracker := view.NewTracker()

	creds := service.NewCredentials(st, sessions, logger, cfg.Auth.BcryptCost)
	todos := service.NewTodos(st, guard, tracker, logger)
	profile := service.NewProfile(st, guard, creds, logger)

	handler := web.New(creds, todos, profile, tracker, logger)

	logger.Info("listening", "addr", cfg.Server.Addr, "db", cfg.Database.Path)
	if err := http.ListenAndServe(cfg.Server.Addr, handler.Routes()); err != nil {
		logger.Fatal("server stopped", "error", err)
	}
}
