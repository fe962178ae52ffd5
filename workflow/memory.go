package workflow

import (
	"fmt"
	"strings"
	"sync"
)

// Turn is one completed question/answer exchange.
type Turn struct {
	Query  string
	Answer string
}

// ConversationLog is an append-only record of completed turns, scoped to one
// Coordinator. It renders the history text the retrieval and response
// prompts consume.
//
// Concurrency: protected by RWMutex.
type ConversationLog struct {
	mu    sync.RWMutex
	turns []Turn
}

// NewConversationLog creates an empty conversation log.
func NewConversationLog() *ConversationLog {
	return &ConversationLog{}
}

// Append records a completed turn.
func (l *ConversationLog) Append(query, answer string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.turns = append(l.turns, Turn{Query: query, Answer: answer})
}

// History renders all turns as prompt text, one
// "Question: ...\nAnswer: ...\n\n" block per turn in append order. An empty
// log renders as the empty string.
func (l *ConversationLog) History() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var b strings.Builder
	for _, t := range l.turns {
		fmt.Fprintf(&b, "Question: %s\nAnswer: %s\n\n", t.Query, t.Answer)
	}
	return b.String()
}

// Len returns the number of recorded turns.
func (l *ConversationLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.turns)
}

// Turns returns a copy of the recorded turns.
func (l *ConversationLog) Turns() []Turn {
	l.mu.RLock()
	defer l.mu.RUnlock()
	turns := make([]Turn, len(l.turns))
	copy(turns, l.turns)
	return turns
}
