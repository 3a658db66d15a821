package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/tartampluch/go-wtime/internal/config"
	"github.com/tartampluch/go-wtime/internal/engine"
)

// main is the application entry point.
// It delegates execution to runMain to ensure that deferred function calls
// (like closing log files) are executed before the process terminates.
// os.Exit() does not run defers, so we must return an integer code first.
func main() {
	os.Exit(runMain())
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
func runMain() int {
	// -------------------------------------------------------------------------
	// 1. CLI Argument Parsing
	// -------------------------------------------------------------------------
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)
	useLocal := flag.Bool(config.FlagLocal, false, config.FlagDescLocal)
	offset := flag.Int64(config.FlagOffset, 0, config.FlagDescOffset)
	lang := flag.String(config.FlagLang, "", config.FlagDescLang)
	port := flag.String(config.FlagPort, "", config.FlagDescPort)
	flag.Parse()

	if *showVersion {
		printVersion()
		return config.ExitCodeSuccess
	}

	cmd := config.CmdNow
	if flag.NArg() > 0 {
		cmd = flag.Arg(0)
	}
	if !knownCommand(cmd) {
		fmt.Fprintf(os.Stderr, "%s: %q\n", config.ErrUnknownCommand, cmd)
		fmt.Fprint(os.Stderr, config.MsgUsage)
		return config.ExitCodeUsage
	}

	// -------------------------------------------------------------------------
	// 2. Logging Initialization
	// -------------------------------------------------------------------------
	// The serve command is long-running and logs to stdout like a daemon;
	// one-shot commands keep stdout for their output.
	logCloser := setupLogging(*debugMode, cmd == config.CmdServe)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close() // Best effort close
		}()
	}

	// -------------------------------------------------------------------------
	// 3. Settings (environment, then flags)
	// -------------------------------------------------------------------------
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return config.ExitCodeUsage
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case config.FlagLocal:
			// Visited before offset, so an explicit -offset still wins.
			if *useLocal {
				settings.Mode = config.ModeLocal
			} else if settings.Mode == config.ModeLocal {
				settings.Mode = config.ModeUTC
			}
		case config.FlagOffset:
			settings.Mode = config.ModeFixed
			settings.Offset = *offset
		case config.FlagLang:
			settings.Language = *lang
		case config.FlagPort:
			settings.Port = *port
		}
	})

	if err := settings.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return config.ExitCodeUsage
	}

	slog.Debug(config.MsgSettings,
		config.LogKeyComponent, config.CompSetting,
		config.LogKeyMode, settings.Mode,
		config.LogKeyOffset, settings.Offset,
		config.LogKeyPort, settings.Port,
		config.LogKeyInterval, settings.Refresh.String(),
		config.LogKeyLang, settings.Language,
	)

	// -------------------------------------------------------------------------
	// 4. Context & Signal Handling
	// -------------------------------------------------------------------------
	// Create a root context that cancels on SIGINT (Ctrl+C) or SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	// -------------------------------------------------------------------------
	// 5. Application Logic
	// -------------------------------------------------------------------------
	app, err := newApp(engine.RealClock{}, settings)
	if err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	if err := app.run(ctx, cmd, os.Stdout); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyCommand, cmd,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Debug(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// printVersion outputs the build information to stdout.
func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Debug(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger.
// Console output goes to stdout for the server and stderr otherwise.
func setupLogging(debugMode, daemon bool) io.Closer {
	var writers []io.Writer
	var logFile *os.File

	if daemon {
		writers = append(writers, os.Stdout)
	} else {
		writers = append(writers, os.Stderr)
	}

	// Attempt to set up a file writer in the user's cache directory.
	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if !daemon {
		level = slog.LevelWarn
	}
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)

	// Ensure the directory exists with restricted permissions (700).
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
