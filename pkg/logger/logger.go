package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Dir holds valinor.log in production.
var Dir = "logs"

// Setup points the standard logger at stdout, or at Dir/valinor.log in production.
// The returned func restores stdout and closes the log file.
func Setup(env string) func() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	log.SetOutput(os.Stdout)

	if !isProduction(env) {
		return func() {}
	}

	f, err := openLogFile(Dir)
	if err != nil {
		log.Printf("[valinor][logger] WARN %v, logging to stdout", err)
		return func() {}
	}

	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stdout)
		_ = f.Close()
	}
}

func openLogFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "valinor.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

func isProduction(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "prod", "production":
		return true
	}
	return false
}
