package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/mailterm/internal/app"
	"github.com/nhle/mailterm/internal/credential"
	"github.com/nhle/mailterm/internal/model"
	"github.com/nhle/mailterm/internal/provider"
	"github.com/nhle/mailterm/internal/provider/imap"
	"github.com/nhle/mailterm/internal/provider/mock"
	"github.com/nhle/mailterm/internal/setup"
)

func main() {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to config file")
	flag.Parse()

	// The terminal belongs to the UI; logs go to a file next to the config.
	logPath := filepath.Join(filepath.Dir(*configPath), "mailterm.log")
	if logFile, err := os.OpenFile(
		logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600,
	); err == nil {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Provider.Type == "" {
		if err := setup.Run(*configPath, cfg); err != nil {
			log.Fatalf("Setup failed: %v", err)
		}
	}

	p, err := buildProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize mail provider: %v", err)
	}

	program := tea.NewProgram(app.New(p, cfg.Display), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Fatalf("Error running mailterm: %v", err)
	}
}

// buildProvider constructs the configured mail provider. The IMAP
// password comes from the MAILTERM_PASSWORD environment variable when
// set, otherwise from the system keyring.
func buildProvider(cfg *model.AppConfig) (provider.Provider, error) {
	if cfg.Provider.Type == model.ProviderTypeMock {
		return mock.New(), nil
	}

	password := os.Getenv("MAILTERM_PASSWORD")
	if password == "" {
		var err error
		password, err = credential.Get(setup.PasswordKey)
		if err != nil {
			return nil, err
		}
	}

	return imap.New(imap.Config{
		Server:   cfg.Provider.Server,
		Port:     cfg.Provider.Port,
		Email:    cfg.Provider.Email,
		Password: password,
		Mailbox:  cfg.Provider.Mailbox,
		TLS:      cfg.Provider.TLS,
	}), nil
}
