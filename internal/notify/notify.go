// Package notify is a small queue of transient user-facing notices. It is
// constructed once and handed to whatever needs to report something, so no
// component depends on hidden global state.
package notify

import "time"

// Kind distinguishes informational notices from failures.
type Kind int

const (
	Info Kind = iota
	Error
)

// DefaultTTL is how long a notice stays visible.
const DefaultTTL = 4 * time.Second

// Notice is one transient message.
type Notice struct {
	Text string
	Kind Kind
	At   time.Time
}

// Queue collects notices and expires them after a fixed display duration.
type Queue struct {
	ttl     time.Duration
	now     func() time.Time
	notices []Notice
}

func NewQueue(ttl time.Duration) *Queue {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Queue{ttl: ttl, now: time.Now}
}

// Push enqueues an informational notice.
func (q *Queue) Push(text string) {
	q.push(text, Info)
}

// PushError enqueues a failure notice.
func (q *Queue) PushError(text string) {
	q.push(text, Error)
}

func (q *Queue) push(text string, kind Kind) {
	q.notices = append(q.notices, Notice{Text: text, Kind: kind, At: q.now()})
}

// Active prunes expired notices and returns what should still be shown,
// oldest first.
func (q *Queue) Active() []Notice {
	cutoff := q.now().Add(-q.ttl)
	kept := q.notices[:0]
	for _, n := range q.notices {
		if n.At.After(cutoff) {
			kept = append(kept, n)
		}
	}
	q.notices = kept
	out := make([]Notice, len(kept))
	copy(out, kept)
	return out
}
