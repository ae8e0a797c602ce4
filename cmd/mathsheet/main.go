package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"mathsheet/internal/config"
	"mathsheet/internal/engine"
	"mathsheet/internal/library"
	"mathsheet/internal/sheet"
	"mathsheet/internal/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var engineURL string
	var mode string

	root := &cobra.Command{
		Use:          "mathsheet [file]",
		Short:        "Interactive math expression sheet",
		Long:         "mathsheet is a terminal expression sheet: every line is a formula,\nevaluated by the external engine as you type, with results shown inline.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(args, engineURL, mode)
		},
	}
	root.PersistentFlags().StringVar(&engineURL, "engine-url", "", "override the evaluation engine URL")
	root.PersistentFlags().StringVar(&mode, "mode", "", "initial evaluation mode (float|complex|units)")
	root.AddCommand(newEvalCmd(&engineURL, &mode))
	return root
}

func loadConfig(engineURL, mode string) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if engineURL != "" {
		cfg.Engine.URL = engineURL
	}
	if mode != "" {
		cfg.Engine.Mode = mode
	}
	if _, err := engine.ParseMode(cfg.Engine.Mode); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runTUI(args []string, engineURL, mode string) error {
	cfg, err := loadConfig(engineURL, mode)
	if err != nil {
		return err
	}

	// The TUI owns the terminal; stdlib log output goes to the configured
	// debug file or nowhere.
	if cfg.UI.DebugLog != "" {
		f, err := os.OpenFile(cfg.UI.DebugLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	var filePath, body string
	if len(args) == 1 {
		filePath = args[0]
		data, err := os.ReadFile(filePath)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("open %s: %w", filePath, err)
		}
		body = strings.TrimRight(string(data), "\n")
	}

	store := openLibrary(cfg)

	app := tui.New(tui.Options{
		Config:   cfg,
		Engine:   engine.NewClient(cfg.Engine.URL, cfg.Engine.Timeout()),
		Store:    store,
		FilePath: filePath,
		Body:     body,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// openLibrary opens the saved-sheet store. The library is a convenience, not
// a requirement: any failure degrades to a nil store and the TUI carries on.
func openLibrary(cfg config.Config) *library.Store {
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Printf("library: mkdir: %v", err)
		return nil
	}
	if err := library.RunMigrations(cfg.Database.Path); err != nil {
		log.Printf("library: migrate: %v", err)
		return nil
	}
	db, err := library.Open(cfg.Database.Path)
	if err != nil {
		log.Printf("library: open: %v", err)
		return nil
	}
	return library.NewStore(db)
}

func newEvalCmd(engineURL, mode *string) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <file>",
		Short: "Evaluate a sheet file once and print the results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*engineURL, *mode)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			body := strings.TrimRight(string(data), "\n")
			evalMode, _ := engine.ParseMode(cfg.Engine.Mode)

			client := engine.NewClient(cfg.Engine.URL, cfg.Engine.Timeout())
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Engine.Timeout())
			defer cancel()
			outcomes, err := client.Evaluate(ctx, evalMode, body)
			if err != nil {
				return err
			}

			lines := strings.Split(body, "\n")
			for i := range lines {
				if i >= len(outcomes) {
					break
				}
				res := sheet.Classify(&outcomes[i])
				switch {
				case res == nil:
					fmt.Fprintln(cmd.OutOrStdout(), lines[i])
				case res.Err != nil:
					fmt.Fprintf(cmd.OutOrStdout(), "%s\nError: %s\n", lines[i], res.Err.Display())
				default:
					fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", lines[i], res.Text)
				}
			}
			return nil
		},
	}
}
