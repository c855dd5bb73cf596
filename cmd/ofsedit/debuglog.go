// ABOUTME: Debug logging helper, grounded on the teacher's common.go SetupDebugLog/InitDebugLog
// ABOUTME: A package-level logger gated by the -debug flag; silent when unset

package main

import (
	"fmt"
	"log"
	"os"
)

var debugLog *log.Logger

// SetupDebugLog initializes debug logging to the given file and prints a
// confirmation when stdout is a terminal.
func SetupDebugLog(filename string) error {
	if err := InitDebugLog(filename); err != nil {
		return fmt.Errorf("failed to initialize debug log: %w", err)
	}
	if fileInfo, _ := os.Stdout.Stat(); (fileInfo.Mode() & os.ModeCharDevice) != 0 {
		fmt.Printf("Debug logging enabled: %s\n", filename)
	}
	return nil
}

// InitDebugLog initializes debug logging to a file without the terminal check.
func InitDebugLog(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create debug log file: %w", err)
	}
	debugLog = log.New(f, "", log.Ltime|log.Lmicroseconds)
	return nil
}

// debugf logs to the debug file if enabled; otherwise a no-op.
func debugf(format string, args ...interface{}) {
	if debugLog != nil {
		debugLog.Printf(format, args...)
	}
}
