package logging

import (
	"fmt"
	"log/slog"
	"strings"

	lxerrors "github.com/Aman-CERP/logexec/internal/errors"
)

// Level is a record severity. Values line up with slog so the two interoperate.
type Level int

const (
	LevelDebug    Level = Level(slog.LevelDebug)
	LevelInfo     Level = Level(slog.LevelInfo)
	LevelWarning  Level = Level(slog.LevelWarn)
	LevelError    Level = Level(slog.LevelError)
	LevelCritical Level = Level(slog.LevelError + 4)
)

// String returns the label written into log lines.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	case LevelCritical:
		return "CRITICAL"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// Slog converts the level to its slog equivalent.
func (l Level) Slog() slog.Level {
	return slog.Level(l)
}

// LevelFromSlog converts a slog level. Levels between the named ones are kept as is.
func LevelFromSlog(l slog.Level) Level {
	return Level(l)
}

// ParseLevel converts a level name (case-insensitive) to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarning, nil
	case "error":
		return LevelError, nil
	case "critical", "fatal":
		return LevelCritical, nil
	default:
		return 0, lxerrors.New(lxerrors.ErrCodeInvalidLevel, fmt.Sprintf("unknown log level %q", s), nil).
			WithSuggestion("use one of debug, info, warning, error, critical")
	}
}

// MustParseLevel is ParseLevel for constant input. It panics on unknown names.
func MustParseLevel(s string) Level {
	l, err := ParseLevel(s)
	if err != nil {
		panic(err)
	}
	return l
}
