package festival

import (
	"sort"
	"sync"
	"time"

	"festival-quiz/internal/domain"
)

// Board is the in-memory ranking of one round. Every submission is kept as its own entry.
type Board struct {
	now         func() time.Time
	mu          sync.RWMutex
	seq         int
	entries     []boardEntry
	subscribers map[chan []domain.RankingEntry]struct{}
}

type boardEntry struct {
	name        string
	score       int
	submittedAt time.Time
	seq         int
}

func NewBoard() *Board {
	return NewBoardWithClock(time.Now)
}

// NewBoardWithClock allows deterministic timestamps in tests.
func NewBoardWithClock(now func() time.Time) *Board {
	return &Board{
		now:         now,
		subscribers: make(map[chan []domain.RankingEntry]struct{}),
	}
}

// Submit records a finished score and broadcasts the new ranking.
func (b *Board) Submit(name string, score int) []domain.RankingEntry {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	b.entries = append(b.entries, boardEntry{
		name:        name,
		score:       score,
		submittedAt: b.now(),
		seq:         b.seq,
	})
	return b.broadcastLocked()
}

// Snapshot returns the ranking sorted by score descending.
func (b *Board) Snapshot() []domain.RankingEntry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshotLocked()
}

// Reset clears the round and broadcasts the empty ranking.
func (b *Board) Reset() []domain.RankingEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = nil
	return b.broadcastLocked()
}

func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}

// Subscribe returns a channel that receives ranking snapshots, starting with the current one.
// The caller must invoke the returned cancel function to avoid leaks.
func (b *Board) Subscribe() (<-chan []domain.RankingEntry, func()) {
	ch := make(chan []domain.RankingEntry, 8)

	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	// the buffer is empty, so this cannot block and no broadcast can precede it
	ch <- b.snapshotLocked()
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subscribers[ch]; ok {
			delete(b.subscribers, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

func (b *Board) broadcastLocked() []domain.RankingEntry {
	ranking := b.snapshotLocked()
	for ch := range b.subscribers {
		select {
		case ch <- ranking:
		default:
			// slow subscriber: drop its oldest snapshot
			select {
			case <-ch:
			default:
			}
			ch <- ranking
		}
	}
	return ranking
}

func (b *Board) snapshotLocked() []domain.RankingEntry {
	sorted := make([]boardEntry, len(b.entries))
	copy(sorted, b.entries)

	// score desc, then whoever submitted first
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].score != sorted[j].score {
			return sorted[i].score > sorted[j].score
		}
		if !sorted[i].submittedAt.Equal(sorted[j].submittedAt) {
			return sorted[i].submittedAt.Before(sorted[j].submittedAt)
		}
		return sorted[i].seq < sorted[j].seq
	})

	ranking := make([]domain.RankingEntry, 0, len(sorted))
	for _, e := range sorted {
		ranking = append(ranking, domain.RankingEntry{Name: e.name, Score: e.score})
	}
	return ranking
}
