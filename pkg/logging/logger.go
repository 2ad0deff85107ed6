// Package logging writes the loop's structured JSONL event log: one file
// per session plus a shared errors.jsonl holding every error event.
package logging

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Level is an event severity. Levels order by verbosity, debug lowest.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"debug", "info", "warn", "error"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel accepts a level name in any case, ignoring surrounding space.
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range levelNames {
		if n == name {
			return Level(i), nil
		}
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Category names the part of the loop an event came from.
type Category string

const (
	CategoryLifecycle Category = "lifecycle"
	CategoryInput     Category = "input"
	CategoryRender    Category = "render"
	CategoryDispatch  Category = "dispatch"
	CategoryHost      Category = "host"
)

// Event is one JSONL record.
type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     Level          `json:"level"`
	Category  Category       `json:"category"`
	EventType string         `json:"type"`
	SessionID string         `json:"session_id,omitempty"`
	TaskID    string         `json:"task_id,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	Message   string         `json:"message,omitempty"`
}

// sink is an output that only takes events at or above floor. A nil floor
// follows the logger's minimum level.
type sink struct {
	w     io.WriteCloser
	floor *Level
}

// Logger fans events out to its sinks. A nil *Logger discards everything,
// so components can hold one unconditionally.
type Logger struct {
	mu        sync.Mutex
	sessionID string
	baseDir   string
	minLevel  Level
	sinks     []sink
}

// NewLogger opens baseDir/sessions/<sessionID>.jsonl and
// baseDir/errors.jsonl for appending, creating directories as needed.
func NewLogger(baseDir, sessionID string) (*Logger, error) {
	sessionsDir := filepath.Join(baseDir, "sessions")
	if err := os.MkdirAll(sessionsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create sessions directory: %w", err)
	}

	session, err := openAppend(filepath.Join(sessionsDir, sessionID+".jsonl"))
	if err != nil {
		return nil, err
	}
	errs, err := openAppend(filepath.Join(baseDir, "errors.jsonl"))
	if err != nil {
		session.Close()
		return nil, err
	}

	errFloor := LevelError
	return &Logger{
		sessionID: sessionID,
		baseDir:   baseDir,
		minLevel:  LevelInfo,
		sinks:     []sink{{w: session}, {w: errs, floor: &errFloor}},
	}, nil
}

func openAppend(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log %s: %w", path, err)
	}
	return f, nil
}

func (l *Logger) SessionID() string {
	if l == nil {
		return ""
	}
	return l.sessionID
}

// SessionPath is the file holding this session's events.
func (l *Logger) SessionPath() string {
	if l == nil {
		return ""
	}
	return filepath.Join(l.baseDir, "sessions", l.sessionID+".jsonl")
}

// SetMinLevel changes the session log threshold. errors.jsonl always
// receives every error.
func (l *Logger) SetMinLevel(level Level) {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.minLevel = level
	l.mu.Unlock()
}

// Log stamps event with the time and session when unset and writes it to
// every sink that accepts its level.
func (l *Logger) Log(event Event) error {
	if l == nil {
		return nil
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if event.SessionID == "" {
		event.SessionID = l.sessionID
	}

	var line []byte
	for _, s := range l.sinks {
		floor := l.minLevel
		if s.floor != nil {
			floor = *s.floor
		}
		if event.Level < floor {
			continue
		}
		if line == nil {
			data, err := json.Marshal(event)
			if err != nil {
				return fmt.Errorf("marshal event: %w", err)
			}
			line = append(data, '\n')
		}
		if _, err := s.w.Write(line); err != nil {
			return fmt.Errorf("write event: %w", err)
		}
	}
	return nil
}

func (l *Logger) emit(level Level, category Category, eventType, message string, details map[string]any) error {
	return l.Log(Event{
		Level:     level,
		Category:  category,
		EventType: eventType,
		Message:   message,
		Details:   details,
	})
}

func (l *Logger) Debug(category Category, eventType, message string, details map[string]any) error {
	return l.emit(LevelDebug, category, eventType, message, details)
}

func (l *Logger) Info(category Category, eventType, message string, details map[string]any) error {
	return l.emit(LevelInfo, category, eventType, message, details)
}

func (l *Logger) Warn(category Category, eventType, message string, details map[string]any) error {
	return l.emit(LevelWarn, category, eventType, message, details)
}

func (l *Logger) Error(category Category, eventType, message string, details map[string]any) error {
	return l.emit(LevelError, category, eventType, message, details)
}

// Close closes every sink. Later calls are no-ops.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	var firstErr error
	for _, s := range l.sinks {
		if err := s.w.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close log: %w", err)
		}
	}
	l.sinks = nil
	return firstErr
}

// ReadRecentEvents returns the last count events in a JSONL log, oldest
// first. A negative count returns them all. Lines that do not decode are
// skipped.
func ReadRecentEvents(logPath string, count int) ([]Event, error) {
	f, err := os.Open(logPath)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		var ev Event
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			continue
		}
		events = append(events, ev)
		if count >= 0 && len(events) > count {
			events = events[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return events, fmt.Errorf("read log: %w", err)
	}
	return events, nil
}
