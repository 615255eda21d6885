// Package logger adapts common logging libraries to the printf-style sink
// consumed by the jwt package.
//
// Adapters:
//
//   - [NewSlog] for log/slog.
//   - [NewLogrus] for github.com/sirupsen/logrus.
//   - [Nop] discards everything.
package logger
