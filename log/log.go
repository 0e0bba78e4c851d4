// Package log holds the process-wide loggers used by selectorkit.
// Call Initialize once in main and Close before exit.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

var (
	InfoLog    = log.New(io.Discard, "", 0)
	WarningLog = log.New(io.Discard, "", 0)
	ErrorLog   = log.New(io.Discard, "", 0)
)

var logFileName = filepath.Join(os.TempDir(), "selectorkit.log")

var globalLogFile *os.File

// Initialize opens the log file and points the package loggers at it.
// If the file cannot be opened the loggers keep writing to stderr.
func Initialize() {
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		InfoLog = log.New(os.Stderr, "INFO:", log.Ldate|log.Ltime|log.Lshortfile)
		WarningLog = log.New(os.Stderr, "WARNING:", log.Ldate|log.Ltime|log.Lshortfile)
		ErrorLog = log.New(os.Stderr, "ERROR:", log.Ldate|log.Ltime|log.Lshortfile)
		ErrorLog.Printf("could not open log file %s: %v", logFileName, err)
		return
	}

	InfoLog = log.New(f, "INFO:", log.Ldate|log.Ltime|log.Lshortfile)
	WarningLog = log.New(f, "WARNING:", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLog = log.New(f, "ERROR:", log.Ldate|log.Ltime|log.Lshortfile)
	globalLogFile = f

	InitDebug()
}

// Close flushes and closes the log files opened by Initialize.
func Close() {
	CloseDebug()
	if globalLogFile == nil {
		return
	}
	_ = globalLogFile.Close()
	globalLogFile = nil
	fmt.Println("wrote logs to " + logFileName)
}

// FileName returns the path of the main log file.
func FileName() string {
	return logFileName
}
