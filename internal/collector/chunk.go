package collector

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"GoldLens/internal/logger"
	"GoldLens/internal/model"
)

// DefaultChunkSize is the largest number of symbols sent in one download.
const DefaultChunkSize = 100

// Chunk splits symbols into consecutive batches of at most size, keeping the
// input order so identical universes produce identical batch boundaries.
func Chunk(symbols []string, size int) [][]string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	var chunks [][]string
	for i := 0; i < len(symbols); i += size {
		end := i + size
		if end > len(symbols) {
			end = len(symbols)
		}
		chunk := make([]string, end-i)
		copy(chunk, symbols[i:end])
		chunks = append(chunks, chunk)
	}
	return chunks
}

// Retrieval is the outcome of one chunked download.
type Retrieval struct {
	// Tables holds one entry per successful chunk, in chunk order.
	Tables        []model.PriceTable
	Chunks        int
	Failed        int
	FailedSymbols []string
}

// Orchestrator runs chunked downloads over a bounded worker pool. A failed
// chunk is logged and dropped; only the failure of every chunk is an error.
type Orchestrator struct {
	Provider    PriceProvider
	ChunkSize   int
	Concurrency int
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(p PriceProvider, chunkSize, concurrency int) *Orchestrator {
	return &Orchestrator{Provider: p, ChunkSize: chunkSize, Concurrency: concurrency}
}

// Retrieve downloads symbols chunk by chunk. The returned Retrieval is always
// non-nil; err wraps ErrNoPriceData when no chunk succeeded.
func (o *Orchestrator) Retrieve(ctx context.Context, symbols []string, req DownloadRequest) (*Retrieval, error) {
	chunks := Chunk(symbols, o.ChunkSize)
	r := &Retrieval{Chunks: len(chunks)}
	if len(chunks) == 0 {
		return r, fmt.Errorf("%w: empty universe", ErrNoPriceData)
	}

	limit := o.Concurrency
	if limit < 1 {
		limit = 1
	}

	// Each worker owns one slot; slots are read only after Wait.
	results := make([]model.PriceTable, len(chunks))
	start := time.Now()

	var g errgroup.Group
	g.SetLimit(limit)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			logger.L.Infof("%s: downloading chunk %d/%d (%d symbols)", o.Provider.Name(), i+1, len(chunks), len(chunk))
			table, err := o.Provider.Download(ctx, chunk, req)
			if err != nil {
				logger.L.Errorf("%s: chunk %d/%d failed: %v", o.Provider.Name(), i+1, len(chunks), err)
				return nil
			}
			if table == nil {
				table = model.PriceTable{}
			}
			results[i] = table
			return nil
		})
	}
	_ = g.Wait()

	for i, table := range results {
		if table == nil {
			r.Failed++
			r.FailedSymbols = append(r.FailedSymbols, chunks[i]...)
			continue
		}
		r.Tables = append(r.Tables, table)
	}

	logger.L.Infof("%s: retrieval complete: chunks=%d failed=%d duration=%s",
		o.Provider.Name(), r.Chunks, r.Failed, time.Since(start).Round(time.Millisecond))

	if r.Failed == r.Chunks {
		return r, fmt.Errorf("%w: all %d chunks failed", ErrNoPriceData, r.Chunks)
	}
	return r, nil
}
