package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"

	"github.com/jhoicas/agrochain-api/internal/domain/entity"
	"github.com/jhoicas/agrochain-api/internal/domain/repository"
)

var _ repository.SystemLogRepository = (*LogRing)(nil)

// DefaultLogRingSize capacidad por defecto del ring de logs.
const DefaultLogRingSize = 5000

// LogRing almacén acotado de SystemLog para cuando no hay MongoDB configurado.
// Al llenarse descarta las entradas más antiguas.
type LogRing struct {
	mu   sync.RWMutex
	buf  []entity.SystemLog
	next int
	full bool
}

// NewLogRing crea un ring con la capacidad dada (DefaultLogRingSize si size <= 0).
func NewLogRing(size int) *LogRing {
	if size <= 0 {
		size = DefaultLogRingSize
	}
	return &LogRing{buf: make([]entity.SystemLog, size)}
}

func (r *LogRing) InsertMany(_ context.Context, logs []entity.SystemLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range logs {
		r.buf[r.next] = l
		r.next = (r.next + 1) % len(r.buf)
		if r.next == 0 {
			r.full = true
		}
	}
	return nil
}

// snapshot devuelve las entradas de la más reciente a la más antigua.
func (r *LogRing) snapshot() []entity.SystemLog {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := r.next
	if r.full {
		n = len(r.buf)
	}
	out := make([]entity.SystemLog, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, r.buf[(r.next-i+len(r.buf))%len(r.buf)])
	}
	return out
}

func (r *LogRing) List(_ context.Context, f repository.LogFilter) ([]entity.SystemLog, int64, error) {
	// Un Caser tiene estado: uno por llamada.
	fold := cases.Fold()
	search := fold.String(f.Search)
	matched := make([]entity.SystemLog, 0)
	for _, l := range r.snapshot() {
		if f.Level != "" && l.Level != f.Level {
			continue
		}
		if f.From != nil && l.Timestamp.Before(*f.From) {
			continue
		}
		if f.To != nil && l.Timestamp.After(*f.To) {
			continue
		}
		if search != "" &&
			!strings.Contains(fold.String(l.Message), search) &&
			!strings.Contains(fold.String(l.Source), search) {
			continue
		}
		matched = append(matched, l)
	}
	return page(matched, f.Offset, f.Limit), int64(len(matched)), nil
}

func (r *LogRing) CountByLevel(_ context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, l := range r.snapshot() {
		counts[l.Level]++
	}
	return counts, nil
}

func (r *LogRing) ListSince(_ context.Context, since time.Time) ([]entity.SystemLog, error) {
	out := make([]entity.SystemLog, 0)
	for _, l := range r.snapshot() {
		if !l.Timestamp.Before(since) {
			out = append(out, l)
		}
	}
	return out, nil
}
