// ringlru is an interactive shell around an LRU cache of string keys and values.
//
// Usage:
//
//	ringlru [flags]
//
// Flags:
//
//	-c, --capacity    Maximum number of entries (default 128)
//	    --config      JSONC config file; flags set on the command line win
//	    --log-level   debug, info, warn or error (default info)
//	    --log-file    Log destination, "-" for stderr (default ringlru.log)
//	    --history     Shell history file (default ~/.ringlru_history)
//
// Type 'help' in the shell for the list of commands.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/evanjt06/ringlru/cache"
	"github.com/evanjt06/ringlru/internal/config"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := resolveConfig(fs)
	if err != nil {
		fmt.Fprintf(stderr, "ringlru: %v\n", err)
		return 1
	}

	logger, closeLog, err := openLogger(cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "ringlru: %v\n", err)
		return 1
	}
	defer closeLog()

	c := cache.NewOpenCache[string, string](cfg.Capacity, logger)
	defer func() {
		// stderr and stdout do not support fsync
		_ = c.Close()
	}()

	logger.Infow("ringlru starting", "capacity", cfg.Capacity, "level", cfg.LogLevel)

	sh := newShell(c, stdout, cfg.HistoryFile)
	if err := sh.Run(); err != nil {
		logger.Errorw("Shell stopped", "error", err)
		fmt.Fprintf(stderr, "ringlru: %v\n", err)
		return 1
	}
	return 0
}

func newFlagSet(output io.Writer) *pflag.FlagSet {
	d := config.Default()

	fs := pflag.NewFlagSet("ringlru", pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.IntP("capacity", "c", d.Capacity, "maximum number of entries")
	fs.String("config", "", "JSONC config file")
	fs.String("log-level", d.LogLevel, "log level: debug, info, warn, error")
	fs.String("log-file", d.LogFile, `log destination, "-" for stderr, "" to disable`)
	fs.String("history", d.HistoryFile, "shell history file")
	return fs
}

// resolveConfig merges, in increasing precedence, the defaults, the config
// file named by --config and every flag set explicitly on the command line.
func resolveConfig(fs *pflag.FlagSet) (config.Config, error) {
	path, _ := fs.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if fs.Changed("capacity") {
		cfg.Capacity, _ = fs.GetInt("capacity")
	}
	if fs.Changed("log-level") {
		cfg.LogLevel, _ = fs.GetString("log-level")
	}
	if fs.Changed("log-file") {
		cfg.LogFile, _ = fs.GetString("log-file")
	}
	if fs.Changed("history") {
		cfg.HistoryFile, _ = fs.GetString("history")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openLogger returns a logger writing to cfg.LogFile and a func releasing it.
func openLogger(cfg config.Config, stderr io.Writer) (*zap.SugaredLogger, func(), error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, nil, err
	}

	switch cfg.LogFile {
	case "":
		return zap.NewNop().Sugar(), func() {}, nil
	case "-":
		return cache.NewLogger(zapcore.Lock(zapcore.AddSync(stderr)), level), func() {}, nil
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return cache.NewLogger(zapcore.AddSync(logFile), level), func() { _ = logFile.Close() }, nil
}
