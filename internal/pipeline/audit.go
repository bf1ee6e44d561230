package pipeline

import (
	"sync"
	"time"

	"github.com/pkarpov/truthscan/internal/model"
)

// AuditEntry records how one claim was verified
type AuditEntry struct {
	Timestamp  time.Time     `json:"timestamp"`
	Claim      string        `json:"claim"`
	Queries    []string      `json:"retrieval_queries"`
	TopSources []string      `json:"top_sources"` // Titles of the top ranked evidence, at most 3
	Confidence int           `json:"confidence_score"`
	Verdict    model.Verdict `json:"verdict"`
}

// AuditLog is a process-lifetime append-only log of verifications.
// It is owned by the Pipeline; there is no package-level instance.
type AuditLog struct {
	mu      sync.Mutex
	entries []AuditEntry
}

// NewAuditLog creates an empty audit log
func NewAuditLog() *AuditLog {
	return &AuditLog{}
}

// Append records an entry. Entries arrive in claim completion order.
func (l *AuditLog) Append(entry AuditEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
}

// Entries returns a copy of the recorded entries
func (l *AuditLog) Entries() []AuditEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]AuditEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
