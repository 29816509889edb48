package logx

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
)

const (
	defaultLogFile      = "./logs/blackball.log"
	defaultMaxSizeMB    = 100
	defaultMaxAgeDays   = 30
	defaultMaxBackups   = 5
	envLogFile          = "LOGFILE"
	envLogFileMaxSizeMB = "LOGFILE_MAX_SIZE_MB"
	envLogFileMaxAge    = "LOGFILE_MAX_AGE_DAYS"
)

// Level orders log severities; messages below the configured level are dropped.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	mu    sync.Mutex
	level = LevelInfo

	lumberjackLogger = &lumberjack.Logger{
		Filename:   getLogFilename(),
		MaxSize:    getEnvInt(envLogFileMaxSizeMB, defaultMaxSizeMB), // megabytes
		MaxAge:     getEnvInt(envLogFileMaxAge, defaultMaxAgeDays),   // days
		MaxBackups: defaultMaxBackups,
	}

	logger = log.New(io.MultiWriter(lumberjackLogger, os.Stderr), "", log.Ldate|log.Ltime|log.Lmicroseconds)
)

func getLogFilename() string {
	if logFile := os.Getenv(envLogFile); logFile != "" {
		return "./logs/" + logFile
	}
	return defaultLogFile
}

func getEnvInt(name string, def int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

// Configure redirects the rotating log file and sets whether log lines are
// mirrored to stderr. An empty path keeps the current file.
func Configure(path string, mirrorStderr bool) {
	mu.Lock()
	defer mu.Unlock()

	if path != "" {
		_ = lumberjackLogger.Close()
		lumberjackLogger.Filename = path
	}
	if mirrorStderr {
		logger.SetOutput(io.MultiWriter(lumberjackLogger, os.Stderr))
	} else {
		logger.SetOutput(lumberjackLogger)
	}
}

// SetOutput replaces the log destination entirely (tests).
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger.SetOutput(w)
}

// SetLevel sets the minimum level that is written.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// ParseLevel accepts debug, info, warn and error, or 0-3.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "0":
		return LevelDebug, nil
	case "info", "1", "":
		return LevelInfo, nil
	case "warn", "warning", "2":
		return LevelWarn, nil
	case "error", "3":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func enabled(l Level) bool {
	mu.Lock()
	defer mu.Unlock()
	return l >= level
}

func Info(category string, content ...interface{}) {
	if !enabled(LevelInfo) {
		return
	}
	message := fmt.Sprint(content...)
	coloredCategory := fmt.Sprintf("%s[INFO][%s]%s", ColorGreen, category, ColorReset)
	logger.Printf("%s: %s", coloredCategory, message)
}

func Error(category string, content ...interface{}) {
	if !enabled(LevelError) {
		return
	}
	message := fmt.Sprint(content...)
	coloredCategory := fmt.Sprintf("%s[ERROR][%s]%s", ColorRed, category, ColorReset)
	logger.Printf("%s: %s", coloredCategory, message)
}

func Warn(category string, content ...interface{}) {
	if !enabled(LevelWarn) {
		return
	}
	message := fmt.Sprint(content...)
	coloredCategory := fmt.Sprintf("%s[WARN][%s]%s", ColorYellow, category, ColorReset)
	logger.Printf("%s: %s", coloredCategory, message)
}

func Debug(category string, content ...interface{}) {
	if !enabled(LevelDebug) {
		return
	}
	message := fmt.Sprint(content...)
	coloredCategory := fmt.Sprintf("%s[DEBUG][%s]%s", ColorBlue, category, ColorReset)
	logger.Printf("%s: %s", coloredCategory, message)
}

// Errorf logs an error message and returns a formatted error
func Errorf(format string, args ...interface{}) error {
	err := fmt.Errorf(format, args...)
	Error("ERROR", err.Error())
	return err
}
