package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ClinScribe/NoteFlow/internal/api"
	"github.com/ClinScribe/NoteFlow/internal/genai"
	"github.com/ClinScribe/NoteFlow/internal/library"
	"github.com/ClinScribe/NoteFlow/internal/models"
	"github.com/ClinScribe/NoteFlow/internal/store"
	"github.com/ClinScribe/NoteFlow/internal/util"
)

// Default configuration constants
const (
	// DefaultStateDir is the default directory for NoteFlow state data
	DefaultStateDir = "/var/lib/noteflow"
	// DefaultDBFileName is the default SQLite database filename
	DefaultDBFileName = "noteflow.db"
)

func main() {
	// Initialize structured logger
	initializeLogger()

	// Load environment configuration
	config := loadEnvironmentConfig()

	// Parse command line flags
	flags := parseCommandLineFlags(config)

	st, err := buildStore(flags)
	if err != nil {
		slog.Error("Failed to initialize registry store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	index := library.BuildIndex(library.DefaultSections)
	cards, err := loadLibrary(flags, index)
	if err != nil {
		slog.Error("Failed to load toolkit library", "error", err, "dir", *flags.cardsDir)
		os.Exit(1)
	}
	engine := library.NewEngine(cards, index)

	navOpts := []library.NavOption{}
	if *flags.debounceMs > 0 {
		navOpts = append(navOpts, library.WithDebounceInterval(time.Duration(*flags.debounceMs)*time.Millisecond))
	}
	nav := library.NewNavState(engine, navOpts...)
	seedRecentViews(st, nav)

	gaClient := buildGenAIClient(flags)

	addr := *flags.apiAddr
	if addr == "" {
		addr = api.DefaultAddr
	}

	slog.Info("Bootstrapping NoteFlow",
		"cards", len(cards),
		"genai_enabled", gaClient != nil,
		"api_addr", addr)
	srv := api.NewServer(st, engine, nav, gaClient, api.WithAddr(addr))
	if err := srv.Run(); err != nil {
		slog.Error("NoteFlow failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("NoteFlow exited successfully")
}

// Config holds environment configuration
type Config struct {
	DbDriver     string
	DatabaseURL  string
	StateDir     string
	CardsDir     string
	Provider     string
	Model        string
	OpenAIKey    string
	AnthropicKey string
	APIAddr      string
	GenAIOff     bool
}

// Flags holds command line flag values
type Flags struct {
	stateDir   *string
	dbDriver   *string
	dbDSN      *string
	cardsDir   *string
	provider   *string
	model      *string
	apiKey     *string
	apiAddr    *string
	debounceMs *int
	genaiOff   *bool
}

// initializeLogger sets up structured logging; LOG_LEVEL selects the minimum level.
func initializeLogger() {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		DbDriver:     os.Getenv("NOTEFLOW_DB_DRIVER"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		StateDir:     os.Getenv("NOTEFLOW_STATE_DIR"),
		CardsDir:     os.Getenv("NOTEFLOW_CARDS_DIR"),
		Provider:     os.Getenv("GENAI_PROVIDER"),
		Model:        os.Getenv("GENAI_MODEL"),
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
		APIAddr:      os.Getenv("API_ADDR"),
		GenAIOff:     util.ParseBoolEnv("NOTEFLOW_GENAI_DISABLED", false),
	}

	if config.StateDir == "" {
		config.StateDir = DefaultStateDir
		slog.Debug("No NOTEFLOW_STATE_DIR set, using default", "default_state_dir", config.StateDir)
	}

	slog.Debug("environment variables loaded",
		"NOTEFLOW_DB_DRIVER", config.DbDriver,
		"DATABASE_URL_SET", config.DatabaseURL != "",
		"NOTEFLOW_STATE_DIR", config.StateDir,
		"NOTEFLOW_CARDS_DIR", config.CardsDir,
		"GENAI_PROVIDER", config.Provider,
		"OPENAI_API_KEY_SET", config.OpenAIKey != "",
		"ANTHROPIC_API_KEY_SET", config.AnthropicKey != "",
		"API_ADDR", config.APIAddr)

	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config) Flags {
	apiKey := config.OpenAIKey
	if strings.EqualFold(config.Provider, genai.ProviderAnthropic) {
		apiKey = config.AnthropicKey
	}
	flags := Flags{
		stateDir:   flag.String("state-dir", config.StateDir, "state directory for NoteFlow data (overrides $NOTEFLOW_STATE_DIR)"),
		dbDriver:   flag.String("db-driver", config.DbDriver, "registry driver: memory, sqlite or postgres (overrides $NOTEFLOW_DB_DRIVER)"),
		dbDSN:      flag.String("db-dsn", config.DatabaseURL, "registry DSN (overrides $DATABASE_URL)"),
		cardsDir:   flag.String("cards-dir", config.CardsDir, "directory of toolkit card YAML files (overrides $NOTEFLOW_CARDS_DIR)"),
		provider:   flag.String("genai-provider", config.Provider, "assistant provider: openai or anthropic (overrides $GENAI_PROVIDER)"),
		model:      flag.String("genai-model", config.Model, "assistant model override (overrides $GENAI_MODEL)"),
		apiKey:     flag.String("genai-api-key", apiKey, "assistant API key (overrides $OPENAI_API_KEY / $ANTHROPIC_API_KEY)"),
		apiAddr:    flag.String("api-addr", config.APIAddr, "API server address (overrides $API_ADDR)"),
		debounceMs: flag.Int("query-debounce-ms", 0, "library query commit debounce in milliseconds (0 uses the built-in default)"),
		genaiOff:   flag.Bool("no-genai", config.GenAIOff, "disable the assistant draft endpoint"),
	}

	flag.Parse()

	slog.Debug("flags parsed",
		"stateDir", *flags.stateDir,
		"dbDriver", *flags.dbDriver,
		"dbDSN_set", *flags.dbDSN != "",
		"cardsDir", *flags.cardsDir,
		"provider", *flags.provider,
		"apiKeySet", *flags.apiKey != "",
		"apiAddr", *flags.apiAddr,
		"genaiOff", *flags.genaiOff)

	return flags
}

// chooseDriver resolves the registry driver from the explicit flag and the DSN shape.
// An unset driver defaults to postgres for URL-style DSNs and sqlite otherwise.
func chooseDriver(driver, dsn string) string {
	switch strings.ToLower(driver) {
	case "memory", "sqlite", "sqlite3", "postgres":
		return strings.ToLower(driver)
	}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return "postgres"
	}
	return "sqlite"
}

func buildStore(flags Flags) (store.Store, error) {
	driver := chooseDriver(*flags.dbDriver, *flags.dbDSN)
	switch driver {
	case "memory":
		slog.Info("Using in-memory registry store")
		return store.NewInMemoryStore(), nil
	case "postgres":
		slog.Info("Using Postgres registry store")
		return store.NewPostgresStore(store.WithDSN(*flags.dbDSN))
	default:
		dsn := *flags.dbDSN
		if dsn == "" {
			dsn = filepath.Join(*flags.stateDir, DefaultDBFileName)
			slog.Debug("No database DSN provided, defaulting to SQLite in state dir", "sqlite_path", dsn)
		}
		slog.Info("Using SQLite registry store", "path", dsn)
		return store.NewSQLiteStore(store.WithDSN(dsn))
	}
}

// loadLibrary reads toolkit cards from the configured directory. With no directory
// configured the library starts empty.
func loadLibrary(flags Flags, index *library.Index) ([]models.Card, error) {
	if *flags.cardsDir == "" {
		slog.Warn("No cards directory configured; toolkit library will be empty")
		return nil, nil
	}
	return library.LoadCards(*flags.cardsDir, index)
}

// seedRecentViews restores the persisted recently-viewed list into the session nav
// state. Replayed oldest-first so the most recent view ends up at the front.
func seedRecentViews(st store.Store, nav *library.NavState) {
	views, err := st.GetRecentViews()
	if err != nil {
		slog.Warn("Failed to load persisted recent views", "error", err)
		return
	}
	for i := len(views) - 1; i >= 0; i-- {
		nav.RecordView(views[i])
	}
	if len(views) > 0 {
		slog.Debug("Restored recent views", "count", len(views))
	}
}

// buildGenAIClient constructs the assistant client when a key is configured. A missing
// key just disables the draft endpoint.
func buildGenAIClient(flags Flags) *genai.Client {
	if *flags.genaiOff {
		slog.Info("Assistant draft endpoint disabled by configuration")
		return nil
	}
	if *flags.apiKey == "" {
		slog.Warn("No assistant API key configured; draft endpoint disabled")
		return nil
	}
	opts := []genai.Option{genai.WithAPIKey(*flags.apiKey)}
	if *flags.provider != "" {
		opts = append(opts, genai.WithProvider(strings.ToLower(*flags.provider)))
	}
	if *flags.model != "" {
		opts = append(opts, genai.WithModel(*flags.model))
	}
	client, err := genai.NewClient(opts...)
	if err != nil {
		slog.Error("Failed to create assistant client; draft endpoint disabled", "error", err)
		return nil
	}
	return client
}
