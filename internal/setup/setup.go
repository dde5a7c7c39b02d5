// Package setup runs the first-run configuration flow: when no provider
// is configured yet, it collects connection settings with a terminal
// form, stores the password in the system keyring, and writes the
// config file.
package setup

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/nhle/mailterm/internal/credential"
	"github.com/nhle/mailterm/internal/model"
)

// PasswordKey is the keyring key holding the mail account password.
const PasswordKey = "mail-password"

// Run interactively fills in the provider section of cfg, persists the
// password to the keyring, and saves the config to path. The password
// never touches the config file.
func Run(path string, cfg *model.AppConfig) error {
	providerType := model.ProviderTypeIMAP

	typeForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Mail provider").
				Description("How should mailterm fetch your inbox?").
				Options(
					huh.NewOption("IMAP server", model.ProviderTypeIMAP),
					huh.NewOption("Sample data (no account needed)", model.ProviderTypeMock),
				).
				Value(&providerType),
		),
	)
	if err := typeForm.Run(); err != nil {
		return fmt.Errorf("running setup form: %w", err)
	}

	cfg.Provider.Type = providerType
	if providerType == model.ProviderTypeMock {
		return save(path, cfg)
	}

	password := ""
	imapForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Server").
				Value(&cfg.Provider.Server).
				Validate(required("server")),
			huh.NewInput().
				Title("Port").
				Value(&cfg.Provider.Port).
				Validate(required("port")),
			huh.NewInput().
				Title("Email address").
				Value(&cfg.Provider.Email).
				Validate(required("email address")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(required("password")),
			huh.NewInput().
				Title("Mailbox").
				Value(&cfg.Provider.Mailbox),
			huh.NewConfirm().
				Title("Use implicit TLS?").
				Value(&cfg.Provider.TLS),
		),
	)
	if err := imapForm.Run(); err != nil {
		return fmt.Errorf("running setup form: %w", err)
	}

	if err := credential.Set(PasswordKey, password); err != nil {
		return fmt.Errorf("storing password: %w", err)
	}

	return save(path, cfg)
}

func save(path string, cfg *model.AppConfig) error {
	if err := model.SaveConfig(path, cfg); err != nil {
		return err
	}
	return nil
}

func required(name string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}
