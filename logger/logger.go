package logger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sirupsen/logrus"
)

// Logger is the sink shape shared by every adapter in this package.
type Logger interface {
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// NewSlog returns a Logger writing through l. A nil l uses slog.Default().
func NewSlog(l *slog.Logger) Logger {
	if l == nil {
		l = slog.Default()
	}
	return &slogAdapter{l: l}
}

type slogAdapter struct{ l *slog.Logger }

func (s *slogAdapter) Infof(format string, args ...any) {
	s.log(slog.LevelInfo, format, args...)
}

func (s *slogAdapter) Errorf(format string, args ...any) {
	s.log(slog.LevelError, format, args...)
}

func (s *slogAdapter) log(level slog.Level, format string, args ...any) {
	ctx := context.Background()
	if !s.l.Enabled(ctx, level) {
		return
	}
	s.l.Log(ctx, level, fmt.Sprintf(format, args...), slog.String("component", "jwt"))
}

// NewLogrus returns a Logger writing through l. A nil l uses the logrus
// standard logger.
func NewLogrus(l logrus.FieldLogger) Logger {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return &logrusAdapter{l: l.WithField("component", "jwt")}
}

type logrusAdapter struct{ l logrus.FieldLogger }

func (a *logrusAdapter) Infof(format string, args ...any)  { a.l.Infof(format, args...) }
func (a *logrusAdapter) Errorf(format string, args ...any) { a.l.Errorf(format, args...) }

// Nop returns a Logger that drops every line.
func Nop() Logger { return nop{} }

type nop struct{}

func (nop) Infof(string, ...any)  {}
func (nop) Errorf(string, ...any) {}
