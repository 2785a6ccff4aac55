package broker

import (
	"os"

	"github.com/urandom/newsroom/log"
)

// logger adapts log.Log to the asynq.Logger interface.
type logger struct {
	log log.Log
}

func (l logger) Debug(args ...interface{}) {
	l.log.Debug(args...)
}

func (l logger) Info(args ...interface{}) {
	l.log.Info(args...)
}

func (l logger) Warn(args ...interface{}) {
	l.log.Print(args...)
}

func (l logger) Error(args ...interface{}) {
	l.log.Print(args...)
}

func (l logger) Fatal(args ...interface{}) {
	l.log.Print(args...)
	os.Exit(1)
}
