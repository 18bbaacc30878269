// Package log wraps logrus with the project formatter and optional
// file rotation.
package log

import (
	"io"
	"os"
	"sync"

	formatter "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger *logrus.Logger
	once   sync.Once
)

// Fields aliases logrus.Fields for call sites.
type Fields = logrus.Fields

// New returns the process-wide logger, creating it on first use. The level
// comes from GAZETRACK_LOG_LEVEL (default info); setting GAZETRACK_LOG_FILE
// adds a rotating file writer alongside stderr.
func New() *logrus.Logger {
	once.Do(func() {
		logger = logrus.New()

		level, err := logrus.ParseLevel(os.Getenv("GAZETRACK_LOG_LEVEL"))
		if err != nil {
			level = logrus.InfoLevel
		}
		logger.SetLevel(level)

		logger.SetFormatter(&formatter.Formatter{
			TimestampFormat: "02 Jan 06 - 15:04:05.000",
			HideKeys:        false,
			NoColors:        false,
		})

		writers := []io.Writer{os.Stderr}
		if path := os.Getenv("GAZETRACK_LOG_FILE"); path != "" {
			writers = append(writers, &lumberjack.Logger{
				Filename:   path,
				LocalTime:  true,
				Compress:   true,
				MaxSize:    50,
				MaxAge:     7,
				MaxBackups: 3,
			})
		}
		logger.SetOutput(io.MultiWriter(writers...))
	})

	return logger
}

// Debug logs at debug level with fields.
func Debug(fields Fields, msg string) {
	New().WithFields(fields).Debug(msg)
}

// Info logs at info level with fields.
func Info(fields Fields, msg string) {
	New().WithFields(fields).Info(msg)
}

// Warn logs at warn level with fields.
func Warn(fields Fields, msg string) {
	New().WithFields(fields).Warn(msg)
}

// Error logs at error level with fields.
func Error(fields Fields, msg string) {
	New().WithFields(fields).Error(msg)
}
