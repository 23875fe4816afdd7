package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var tags = map[Level]*color.Color{
	DEBUG: color.New(color.FgCyan),
	INFO:  color.New(color.FgGreen),
	WARN:  color.New(color.FgYellow),
	ERROR: color.New(color.FgRed, color.Bold),
}

var names = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
}

type Logger struct {
	mu sync.Mutex
	l  *log.Logger
	lv Level
}

var std = New(os.Stderr, INFO)

func New(w io.Writer, level Level) *Logger {
	return &Logger{l: log.New(w, "", 0), lv: level}
}

// Init replaces the package logger used by Debug, Info, Warn and Error.
func Init(w io.Writer, level Level) {
	std = New(w, level)
}

func (lg *Logger) SetLevel(level Level) {
	lg.mu.Lock()
	defer lg.mu.Unlock()
	lg.lv = level
}

func (lg *Logger) log(level Level, msg string, args ...any) {
	lg.mu.Lock()
	defer lg.mu.Unlock()
	if level < lg.lv {
		return
	}
	ts := time.Now().Format("2006-01-02 15:04:05")
	lg.l.Printf("%s [%s] %s", ts, tags[level].Sprint(names[level]), fmt.Sprintf(msg, args...))
}

func (lg *Logger) Debug(m string, a ...any) { lg.log(DEBUG, m, a...) }
func (lg *Logger) Info(m string, a ...any)  { lg.log(INFO, m, a...) }
func (lg *Logger) Warn(m string, a ...any)  { lg.log(WARN, m, a...) }
func (lg *Logger) Error(m string, a ...any) { lg.log(ERROR, m, a...) }

func Debug(m string, a ...any) { std.Debug(m, a...) }
func Info(m string, a ...any)  { std.Info(m, a...) }
func Warn(m string, a ...any)  { std.Warn(m, a...) }
func Error(m string, a ...any) { std.Error(m, a...) }
