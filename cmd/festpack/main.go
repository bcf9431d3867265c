package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/nhle/festpack/internal/app"
	"github.com/nhle/festpack/internal/catalog"
	"github.com/nhle/festpack/internal/clipboard"
	"github.com/nhle/festpack/internal/model"
	"github.com/nhle/festpack/internal/session"
	"github.com/nhle/festpack/internal/store"
	"github.com/nhle/festpack/internal/theme"
	"github.com/nhle/festpack/internal/transfer"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "festpack:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	// Optional; real environment variables win over .env entries.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: could not read .env: %v", err)
	}

	flags := flag.NewFlagSet("festpack", flag.ContinueOnError)
	configPath := flags.String("config", model.DefaultConfigPath(), "path to the YAML config file")
	flags.String("db", "", "path to the checklist database")
	flags.String("catalog", "", "YAML file replacing the built-in templates")
	flags.String("log", "", "path to the log file")
	flags.String("theme", "", "color theme (default, mono)")
	initConfig := flags.Bool("init-config", false, "write the effective config to --config and exit")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := loadConfig(*configPath, flags)
	if err != nil {
		return err
	}

	if *initConfig {
		if err := model.SaveConfig(*configPath, cfg); err != nil {
			return err
		}
		fmt.Println("wrote", *configPath)
		return nil
	}

	theme.Apply(cfg.Display.Theme)

	if err := os.MkdirAll(filepath.Dir(cfg.Log.Path), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	logFile, err := tea.LogToFile(cfg.Log.Path, "festpack")
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	st, err := store.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	cat, err := openCatalog(cfg.Catalog)
	if err != nil {
		return err
	}

	sess, err := session.Open(context.Background(), st, cat,
		session.WithHistoryLimit(cfg.History.Limit),
	)
	if err != nil {
		return err
	}

	codec := transfer.NewCodec(transfer.WithDefaultName(cfg.Export.DefaultName))
	gw := clipboard.NewGateway(codec, clipboard.System{}, clipboard.OSC52Fallback{})

	log.Printf("festpack starting: db=%s templates=%d", cfg.Store.Path, cat.Len())

	p := tea.NewProgram(app.New(sess, gw), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// loadConfig layers defaults, the config file, FESTPACK_* environment
// variables and command-line flags, in increasing precedence.
func loadConfig(path string, flags *flag.FlagSet) (*model.AppConfig, error) {
	v := viper.New()
	model.SetDefaults(v)

	v.SetEnvPrefix("FESTPACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, name := range map[string]string{
		"store.path":    "db",
		"catalog.path":  "catalog",
		"log.path":      "log",
		"display.theme": "theme",
	} {
		if f := flags.Lookup(name); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag --%s: %w", name, err)
			}
		}
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	return model.DecodeConfig(v)
}

func openCatalog(cfg model.CatalogConfig) (*catalog.Catalog, error) {
	if cfg.Path != "" {
		return catalog.Load(cfg.Path, cfg.BaseTemplate)
	}
	return catalog.Builtin(cfg.BaseTemplate)
}
