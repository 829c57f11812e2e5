package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"skein/internal/journal"
	"skein/internal/util"
)

var (
	// Version is set at build time.
	Version   = "dev"
	BuildDate = "unknown"
	Commit    = "unknown"
	help      bool
	version   bool
	// logging
	logLevel string
	logFile  string
	// config vars
	configPath string
)

func init() {
	flag.BoolVar(&help, "help", false, "Display help information and exit")
	flag.BoolVar(&help, "h", false, "Display help information and exit")
	flag.BoolVar(&version, "version", false, "Display version information and exit")
	flag.BoolVar(&version, "v", false, "Display version information and exit")
	flag.StringVar(&configPath, "config", "", "Path to a TOML configuration file (default $"+util.ConfigEnv+")")
	// log config
	flag.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flag.StringVar(&logFile, "log-file", "", "Log file path (if not set, logs to stderr)")
}

func main() {

	flag.Parse()

	if version {
		printVersion()
		return
	}

	if help || flag.NArg() == 0 {
		printHelp()
		return
	}

	config, err := loadConfiguration()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Creates a new Logger that uses a JSONHandler to write to the configured writer
	loggerOptions := &slog.HandlerOptions{
		AddSource: false,
		Level:     logLevelFromString(config.LogLevel),
	}
	logWriter := configureLogWriter(config.LogFile)
	defaultLogger := slog.New(slog.NewJSONHandler(logWriter, loggerOptions))
	slog.SetDefault(defaultLogger)

	if err := run(context.Background(), config, flag.Arg(0)); err != nil {
		slog.Error("command failed", slog.String("command", flag.Arg(0)), slog.Any("error", err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfiguration() (util.Configuration, error) {
	path, explicit := configPath, configPath != ""
	if !explicit {
		path = util.ConfigPath()
	}
	config, err := util.LoadConfiguration(path, explicit)
	if err != nil {
		return config, err
	}
	config.Version = Version
	config.BuildDate = BuildDate
	config.Commit = Commit
	if logLevel != "" {
		config.LogLevel = logLevel
	}
	if logFile != "" {
		config.LogFile = logFile
	}
	return config, nil
}

func run(ctx context.Context, config util.Configuration, command string) error {
	store, err := journal.Open(config.Journal)
	if err != nil {
		return err
	}
	j, err := journal.New(ctx, store)
	if err != nil {
		store.Close()
		return err
	}
	defer j.Close()

	switch command {
	case "journal":
		return listJournal(ctx, j)
	case "clear":
		return j.Clear(ctx)
	case "survey":
		return survey(ctx, j, os.Stdout)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func listJournal(ctx context.Context, j *journal.Journal) error {
	entries, err := j.Entries(ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Printf("%6d  %s  %s\n", e.Count, e.LastSeen.Format("2006-01-02 15:04:05"), e.Description)
	}
	return nil
}

func configureLogWriter(logFile string) *os.File {
	var logWriter *os.File
	var err error
	if logFile != "" {
		// Create parent directories if they don't exist
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create log directory for '%s': %v; falling back to stderr\n", logFile, err)
			return os.Stderr
		}
		logWriter, err = os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file '%s': %v; falling back to stderr\n", logFile, err)
			logWriter = os.Stderr
		}
	} else {
		logWriter = os.Stderr
	}
	return logWriter
}

func printVersion() {

	fmt.Printf("skein version 'v%s' %s %s\n", Version, BuildDate, Commit)
}

func printHelp() {
	fmt.Printf(`Usage: skein [options] <command>

Commands:
  journal            List the collapsed failures recorded so far.
  clear              Empty the journal.
  survey             Call every builtin with malformed arguments and record the failures.

Options:
  -config <path>     TOML configuration file. Default is $%s.
  -help              Display this help information and exit.
  -version           Display version information and exit.
  -log-level <level> Set the log level: debug, info, warn, error. Default is 'error'.
  -log-file <path>   Specify a log file to write logs. Default is stderr.

Configuration:
  log_level = "info"
  [journal]
  driver = "sqlite3"   # memory, bolt, sqlite3, mysql or postgres
  dsn = "journal.db"

Version Information:
  Version:    %s
  Build Date: %s
  Commit:     %s
`, util.ConfigEnv, Version, BuildDate, Commit)
}

func logLevelFromString(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelError
	}
}
