package logger

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"intel-archive/internal/config"

	"github.com/gin-gonic/gin"
)

// Logger interface defines logging methods.
type Logger interface {
	Debug(message string, fields map[string]interface{})
	Info(message string, fields map[string]interface{})
	Warn(message string, fields map[string]interface{})
	Error(message string, err error, fields map[string]interface{})
	Fatal(message string, err error, fields map[string]interface{})
}

type logger struct {
	level  string
	format string
	output *log.Logger
}

// LogEntry represents a structured log entry.
type LogEntry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Error     string                 `json:"error,omitempty"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// New creates a new logger instance.
func New(cfg config.LoggingConfig) Logger {
	var output *log.Logger

	switch cfg.Output {
	case "stdout":
		output = log.New(os.Stdout, "", 0)
	case "stderr":
		output = log.New(os.Stderr, "", 0)
	default:
		file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		output = log.New(file, "", 0)
	}

	return &logger{
		level:  cfg.Level,
		format: cfg.Format,
		output: output,
	}
}

func (l *logger) Debug(message string, fields map[string]interface{}) {
	if l.shouldLog("debug") {
		l.log("DEBUG", message, nil, fields)
	}
}

func (l *logger) Info(message string, fields map[string]interface{}) {
	if l.shouldLog("info") {
		l.log("INFO", message, nil, fields)
	}
}

func (l *logger) Warn(message string, fields map[string]interface{}) {
	if l.shouldLog("warn") {
		l.log("WARN", message, nil, fields)
	}
}

func (l *logger) Error(message string, err error, fields map[string]interface{}) {
	if l.shouldLog("error") {
		l.log("ERROR", message, err, fields)
	}
}

// Fatal logs and exits.
func (l *logger) Fatal(message string, err error, fields map[string]interface{}) {
	l.log("FATAL", message, err, fields)
	os.Exit(1)
}

func (l *logger) log(level, message string, err error, fields map[string]interface{}) {
	entry := LogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level,
		Message:   message,
		Fields:    fields,
	}
	if err != nil {
		entry.Error = err.Error()
	}

	var output string
	if l.format == "json" {
		jsonBytes, _ := json.Marshal(entry)
		output = string(jsonBytes)
	} else {
		output = fmt.Sprintf("[%s] %s: %s", entry.Timestamp, level, message)
		if err != nil {
			output += fmt.Sprintf(" error=%s", err.Error())
		}
		if fields != nil {
			fieldsJSON, _ := json.Marshal(fields)
			output += fmt.Sprintf(" fields=%s", string(fieldsJSON))
		}
	}

	l.output.Println(output)
}

var levelRanks = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
	"fatal": 4,
}

func (l *logger) shouldLog(level string) bool {
	currentRank, ok := levelRanks[l.level]
	if !ok {
		currentRank = levelRanks["info"]
	}
	messageRank, ok := levelRanks[level]
	if !ok {
		return false
	}
	return messageRank >= currentRank
}

// GinMiddleware returns a gin middleware that logs each request with its
// request id, status and latency.
func GinMiddleware(log Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := map[string]interface{}{
			"method":  c.Request.Method,
			"path":    path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"ip":      c.ClientIP(),
		}
		if requestID := c.GetString("request_id"); requestID != "" {
			fields["request_id"] = requestID
		}
		if raw := c.Request.URL.RawQuery; raw != "" {
			fields["query"] = raw
		}

		message := fmt.Sprintf("%s %s", c.Request.Method, path)
		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Error(message, nil, fields)
		case status >= 400:
			log.Warn(message, fields)
		default:
			log.Info(message, fields)
		}
	}
}
