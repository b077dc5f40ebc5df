package webui

import (
	"sync"
	"time"
)

// ActionEntry is one line of the recent-activity feed.
type ActionEntry struct {
	Time   time.Time `json:"time"`
	Action string    `json:"action"`
	Detail string    `json:"detail"`
}

// actionLog is a fixed-capacity ring of recent actions, newest first.
type actionLog struct {
	mu      sync.Mutex
	max     int
	actions []ActionEntry
}

func newActionLog(max int) *actionLog {
	return &actionLog{max: max}
}

func (l *actionLog) add(action, detail string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.actions = append([]ActionEntry{{
		Time:   time.Now().UTC(),
		Action: action,
		Detail: detail,
	}}, l.actions...)

	if len(l.actions) > l.max {
		l.actions = l.actions[:l.max]
	}
}

func (l *actionLog) entries() []ActionEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]ActionEntry, len(l.actions))
	copy(out, l.actions)
	return out
}
