package channel

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/alvmarrod/web-pathfinder/internal/search"
)

// WriterEmitter writes each event as one JSON line
type WriterEmitter struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewWriterEmitter creates an emitter writing newline-delimited JSON to w
func NewWriterEmitter(w io.Writer) *WriterEmitter {
	return &WriterEmitter{enc: json.NewEncoder(w)}
}

// Emit encodes one event
func (e *WriterEmitter) Emit(ctx context.Context, event search.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enc.Encode(event); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	return nil
}
