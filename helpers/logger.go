package helpers

import (
	"conda-locate/utils"
	"log"
	"os"
)

var appLogger *utils.AppLogger

// InitAppLogger initializes the applications global logger.
// Messages always go to stderr; logFilename adds a log file next to it.
// Debug messages are dropped unless verbose is set.
func InitAppLogger(logFilename string, verbose bool) error {
	if appLogger == nil {
		logger := &utils.AppLogger{
			Filename:           logFilename,
			Writer:             os.Stderr,
			FileLoggerFlags:    log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile,
			ConsoleLoggerFlags: log.Ltime,
			Prefix:             "[CONDA-LOCATE] ",
			Verbose:            verbose,
		}
		if err := logger.Init(); err != nil {
			return err
		}
		appLogger = logger
	}

	return nil
}

// CloseAppLogger releases the global logger's log file and resets it.
func CloseAppLogger() error {
	err := appLogger.Close()
	appLogger = nil
	return err
}

// GetAppLogger returns a pointer to the global application logger.
// Most functions can just call this function to start using the logger.
// A nil logger is safe to use and discards everything.
func GetAppLogger() *utils.AppLogger {
	return appLogger
}
