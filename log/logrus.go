package log

import (
	"os"

	lg "github.com/sirupsen/logrus"
	"github.com/urandom/newsroom/config"
)

type logrus struct {
	*lg.Logger
}

// WithLogrus creates a logrus based logger, writing to the converted config
// writer.
func WithLogrus(cfg config.Log) Log {
	logger := logrus{Logger: lg.New()}

	if cfg.Converted.Writer != nil {
		logger.Out = cfg.Converted.Writer
	} else {
		logger.Out = os.Stderr
	}

	switch cfg.Formatter {
	case "text":
		logger.Formatter = &lg.TextFormatter{}
	case "json":
		logger.Formatter = &lg.JSONFormatter{}
	}

	switch cfg.Level {
	case "info":
		logger.Level = lg.InfoLevel
	case "debug":
		logger.Level = lg.DebugLevel
	case "error":
		logger.Level = lg.ErrorLevel
	}

	return logger
}

func (l logrus) Print(args ...interface{}) {
	l.Logger.Error(args...)
}

func (l logrus) Printf(format string, args ...interface{}) {
	l.Logger.Errorf(format, args...)
}

func (l logrus) Println(args ...interface{}) {
	l.Logger.Errorln(args...)
}
