// Package logs graba en segundo plano el registro de peticiones HTTP que consulta el panel de administración.
package logs

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jhoicas/agrochain-api/internal/domain/entity"
	"github.com/jhoicas/agrochain-api/internal/domain/repository"
	"github.com/jhoicas/agrochain-api/pkg/logger"
)

const (
	DefaultBufferSize = 1024
	defaultBatchSize  = 100
	defaultFlushEvery = 2 * time.Second
	writeTimeout      = 5 * time.Second
)

// Recorder encola entradas y las escribe por lotes desde una sola goroutine.
// Record nunca bloquea la petición: con el buffer lleno la entrada se descarta.
type Recorder struct {
	repo       repository.SystemLogRepository
	log        *logger.Logger
	ch         chan entity.SystemLog
	done       chan struct{}
	batchSize  int
	flushEvery time.Duration

	mu      sync.RWMutex
	closed  bool
	dropped atomic.Int64
}

// NewRecorder arranca el escritor. bufferSize <= 0 usa DefaultBufferSize.
func NewRecorder(repo repository.SystemLogRepository, bufferSize int, log *logger.Logger) *Recorder {
	return newRecorder(repo, bufferSize, defaultBatchSize, defaultFlushEvery, log)
}

func newRecorder(repo repository.SystemLogRepository, bufferSize, batchSize int, flushEvery time.Duration, log *logger.Logger) *Recorder {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	r := &Recorder{
		repo:       repo,
		log:        log.Component("request-log"),
		ch:         make(chan entity.SystemLog, bufferSize),
		done:       make(chan struct{}),
		batchSize:  batchSize,
		flushEvery: flushEvery,
	}
	go r.run()
	return r
}

// Record encola una entrada. Devuelve false si se descartó (buffer lleno o recorder cerrado).
func (r *Recorder) Record(entry entity.SystemLog) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return false
	}
	select {
	case r.ch <- entry:
		return true
	default:
		r.dropped.Add(1)
		return false
	}
}

// Dropped cantidad de entradas descartadas por buffer lleno.
func (r *Recorder) Dropped() int64 {
	return r.dropped.Load()
}

// Close deja de aceptar entradas y espera a que se escriba lo pendiente o venza ctx.
func (r *Recorder) Close(ctx context.Context) error {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.ch)
	}
	r.mu.Unlock()

	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Recorder) run() {
	defer close(r.done)
	ticker := time.NewTicker(r.flushEvery)
	defer ticker.Stop()

	batch := make([]entity.SystemLog, 0, r.batchSize)
	for {
		select {
		case entry, ok := <-r.ch:
			if !ok {
				r.flush(batch)
				return
			}
			batch = append(batch, entry)
			if len(batch) >= r.batchSize {
				r.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				r.flush(batch)
				batch = batch[:0]
			}
		}
	}
}

func (r *Recorder) flush(batch []entity.SystemLog) {
	if len(batch) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	// El repositorio puede retener el slice; se entrega una copia.
	out := make([]entity.SystemLog, len(batch))
	copy(out, batch)
	if err := r.repo.InsertMany(ctx, out); err != nil {
		r.log.Error().Err(err).Int("entries", len(out)).Msg("no se pudieron guardar los logs de peticiones")
	}
}
