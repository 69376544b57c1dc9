package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

var initOnce sync.Once

// Setup installs the default slog logger. Records go to a rotating logFile
// and, if console is not nil, to the in-app console as well.
func Setup(logFile string, debug bool, console io.Writer) {
	initOnce.Do(func() {
		slog.SetDefault(slog.New(NewHandler(logFile, debug, console)))
	})
}

// NewHandler builds the handler used by Setup.
func NewHandler(logFile string, debug bool, console io.Writer) slog.Handler {
	var out io.Writer = &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 0,
		MaxAge:     30, // days
		Compress:   false,
	}
	if console != nil {
		out = io.MultiWriter(out, console)
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	return slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// The console stamps its own lines.
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
}

// RecoverPanic writes a panic report to a file in the working directory and
// runs cleanup. It must be deferred.
func RecoverPanic(name string, cleanup func()) {
	if r := recover(); r != nil {
		timestamp := time.Now().Format("20060102-150405")
		filename := fmt.Sprintf("pms-panic-%s-%s.log", name, timestamp)

		file, err := os.Create(filename)
		if err == nil {
			defer file.Close()

			fmt.Fprintf(file, "Panic in %s: %v\n\n", name, r)
			fmt.Fprintf(file, "Time: %s\n\n", time.Now().Format(time.RFC3339))
			fmt.Fprintf(file, "Stack Trace:\n%s\n", debug.Stack())
		}

		if cleanup != nil {
			cleanup()
		}
	}
}
