package log

import (
	"fmt"
	"io"
	"log"
)

type stdLogger struct {
	*log.Logger
}

// WithStd creates a logger on top of the stdlib log package. The info and
// debug messages are tagged with their level, Print messages are not.
func WithStd(out io.Writer, prefix string, flag int) Log {
	return stdLogger{Logger: log.New(out, prefix, flag)}
}

func (st stdLogger) leveled(level string, msg string) {
	st.Output(3, "["+level+"] "+msg)
}

func (st stdLogger) Info(v ...interface{}) {
	st.leveled("info", fmt.Sprint(v...))
}

func (st stdLogger) Infof(format string, v ...interface{}) {
	st.leveled("info", fmt.Sprintf(format, v...))
}

func (st stdLogger) Infoln(v ...interface{}) {
	st.leveled("info", fmt.Sprintln(v...))
}

func (st stdLogger) Debug(v ...interface{}) {
	st.leveled("debug", fmt.Sprint(v...))
}

func (st stdLogger) Debugf(format string, v ...interface{}) {
	st.leveled("debug", fmt.Sprintf(format, v...))
}

func (st stdLogger) Debugln(v ...interface{}) {
	st.leveled("debug", fmt.Sprintln(v...))
}
