package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup points the global zerolog logger at a console writer on stderr and
// applies level ("debug", "info", "warn", ...). An unknown level falls back to info.
// When file is set, JSON lines are also written there with size-based rotation.
func Setup(level, file string) {
	if file == "" {
		SetupWriter(os.Stderr, level)
		return
	}
	rotating := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	SetupWriter(zerolog.MultiLevelWriter(console(os.Stderr), rotating), level)
}

// SetupWriter is Setup with an explicit destination. Writers other than an
// *os.File receive plain JSON.
func SetupWriter(w io.Writer, level string) {
	zerolog.SetGlobalLevel(ParseLevel(level))
	if f, ok := w.(*os.File); ok {
		w = console(f)
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

// ParseLevel maps a level name to zerolog, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func console(w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: w, TimeFormat: time.DateTime}
}
