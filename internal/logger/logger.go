package logger

import (
	"io"
	"log"
	"os"
)

type Logger struct {
	debug *log.Logger
	info  *log.Logger
	warn  *log.Logger
	error *log.Logger
}

func New() *Logger {
	return newWith(os.Stdout, os.Stderr, "")
}

func NewWithWriter(writer io.Writer) *Logger {
	return newWith(writer, writer, "")
}

// Named returns a logger whose lines are prefixed with a component name,
// used by the periodic jobs so interleaved passes stay readable.
func Named(component string) *Logger {
	return newWith(os.Stdout, os.Stderr, "["+component+"] ")
}

func newWith(out, errOut io.Writer, prefix string) *Logger {
	flags := log.Ldate | log.Ltime | log.Lshortfile
	return &Logger{
		debug: log.New(out, "DEBUG: "+prefix, flags),
		info:  log.New(out, "INFO: "+prefix, flags),
		warn:  log.New(errOut, "WARN: "+prefix, flags),
		error: log.New(errOut, "ERROR: "+prefix, flags),
	}
}

func (l *Logger) Debug(v ...interface{}) {
	l.debug.Println(v...)
}

func (l *Logger) Debugf(format string, v ...interface{}) {
	l.debug.Printf(format, v...)
}

func (l *Logger) Info(v ...interface{}) {
	l.info.Println(v...)
}

func (l *Logger) Infof(format string, v ...interface{}) {
	l.info.Printf(format, v...)
}

func (l *Logger) Warn(v ...interface{}) {
	l.warn.Println(v...)
}

func (l *Logger) Warnf(format string, v ...interface{}) {
	l.warn.Printf(format, v...)
}

func (l *Logger) Error(v ...interface{}) {
	l.error.Println(v...)
}

func (l *Logger) Errorf(format string, v ...interface{}) {
	l.error.Printf(format, v...)
}
