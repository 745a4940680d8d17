package utils

import (
	"fmt"
	"io"
	"log"
	"os"
)

// AppLogger writes every message to an optional log file and an optional console writer.
// Debug messages are only written when Verbose is set.
type AppLogger struct {
	Filename string
	Writer   io.Writer

	FileLogger    *log.Logger
	ConsoleLogger *log.Logger

	FileLoggerFlags    int
	ConsoleLoggerFlags int

	Prefix  string
	Verbose bool

	logFile *os.File
}

func (a *AppLogger) Init() error {
	if a.FileLogger == nil && a.Filename != "" {
		appLogFilePath := a.Filename

		appLogFile, err := os.OpenFile(appLogFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0664)
		if err != nil {
			return fmt.Errorf("could not open app log file %s: %w", appLogFilePath, err)
		}
		a.logFile = appLogFile
		a.FileLogger = log.New(appLogFile, a.Prefix, a.FileLoggerFlags)
	}

	if a.ConsoleLogger == nil && a.Writer != nil {
		a.ConsoleLogger = log.New(a.Writer, a.Prefix, a.ConsoleLoggerFlags)
	}

	return nil
}

// Close closes the log file opened by Init, if any.
func (a *AppLogger) Close() error {
	if a == nil || a.logFile == nil {
		return nil
	}
	err := a.logFile.Close()
	a.logFile = nil
	a.FileLogger = nil
	return err
}

func (a *AppLogger) output(s string) {
	if a == nil {
		return
	}
	if a.FileLogger != nil {
		a.FileLogger.Output(3, s)
	}
	if a.ConsoleLogger != nil {
		a.ConsoleLogger.Output(3, s)
	}
}

func (a *AppLogger) Printf(format string, v ...interface{}) {
	a.output(fmt.Sprintf(format, v...))
}

// Debugf writes a "[DEBUG]" tagged message, but only for verbose loggers.
func (a *AppLogger) Debugf(format string, v ...interface{}) {
	if a == nil || !a.Verbose {
		return
	}
	a.output("[DEBUG] " + fmt.Sprintf(format, v...))
}

// ErrorPrintf logs the formatted message and returns it as an error.
// Wrapping verbs such as %w are preserved in the returned error.
func (a *AppLogger) ErrorPrintf(format string, v ...interface{}) error {
	err := fmt.Errorf(format, v...)
	a.output(err.Error())
	return err
}
