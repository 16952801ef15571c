package simplelogger

import (
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// EnvVar names the environment variable holding the log file path.
const EnvVar = "COLORDIFF_LOG_FILE"

// Rotation limits for the log file.
const (
	maxSizeMB  = 10
	maxBackups = 2
)

var (
	mu      sync.Mutex
	writers = map[string]*lumberjack.Logger{}
)

// Logger returns a structured logger that appends JSON lines to the file named by COLORDIFF_LOG_FILE. The file is size-rotated.
//
// If COLORDIFF_LOG_FILE is unset/empty or names a directory, Logger returns a no-op logger.
func Logger() *zerolog.Logger {
	path := os.Getenv(EnvVar)
	if path == "" {
		return nopLogger()
	}
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return nopLogger()
	}

	mu.Lock()
	w, ok := writers[path]
	if !ok {
		w = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			LocalTime:  true,
		}
		writers[path] = w
	}
	mu.Unlock()

	l := zerolog.New(w).With().Timestamp().Logger()
	return &l
}

// Log is a printf-style shorthand for Logger().Info().Msg(...). It is a no-op when logging is off.
func Log(format string, args ...any) {
	Logger().Info().Msg(fmt.Sprintf(format, args...))
}

// Close closes every open log file. Later calls to Logger reopen on demand.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	var firstErr error
	for path, w := range writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(writers, path)
	}
	return firstErr
}

func nopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}
