package dependency

import (
	"container/heap"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"arcparse/nlp/format/conll"
	nlp "arcparse/nlp/types"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type SentenceReader interface {
	// Next returns io.EOF after the last sentence.
	Next() (*nlp.Sentence, error)
}

type SentenceWriter interface {
	Write(*nlp.Sentence) error
}

// workers is the pool size; a zero limit would block every goroutine.
func (p *Parser) workers() int {
	if p.Options.Workers > 0 {
		return p.Options.Workers
	}
	return runtime.NumCPU()
}

// BatchParse parses sents in place on the worker pool.
func (p *Parser) BatchParse(ctx context.Context, sents []*nlp.Sentence) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers())
	for i, sent := range sents {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := p.Parse(sent); err != nil {
				return fmt.Errorf("sentence %d: %w", i+1, err)
			}
			return nil
		})
	}
	return g.Wait()
}

type parsed struct {
	id   int
	sent *nlp.Sentence
}

// parsedHeap orders results by sentence id.
type parsedHeap []parsed

func (h parsedHeap) Len() int           { return len(h) }
func (h parsedHeap) Less(i, j int) bool { return h[i].id < h[j].id }
func (h parsedHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *parsedHeap) Push(x any) {
	*h = append(*h, x.(parsed))
}

func (h *parsedHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Pipeline parses every sentence of in on the worker pool and writes them
// to out in input order. Workers hand results to a single reordering stage
// which forwards them to the writer once all their predecessors have been
// forwarded. It returns the number of sentences written.
func (p *Parser) Pipeline(ctx context.Context, in SentenceReader, out SentenceWriter) (int, error) {
	var (
		written int
		start   = time.Now()
		logger  = p.logger.With(zap.String("job", uuid.NewString()))
		results = make(chan parsed, p.workers())
		ordered = make(chan *nlp.Sentence, p.workers())
	)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// closing results tells the reordering stage all workers are done
		defer close(results)
		workers, wctx := errgroup.WithContext(ctx)
		workers.SetLimit(p.workers())
		var readErr error
		for id := 0; wctx.Err() == nil; id++ {
			sent, err := in.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				readErr = fmt.Errorf("read sentence %d: %w", id+1, err)
				break
			}
			workers.Go(func() error {
				if err := p.Parse(sent); err != nil {
					return fmt.Errorf("sentence %d: %w", id+1, err)
				}
				select {
				case results <- parsed{id, sent}:
					return nil
				case <-wctx.Done():
					return wctx.Err()
				}
			})
		}
		if err := workers.Wait(); err != nil {
			return err
		}
		return readErr
	})

	g.Go(func() error {
		defer close(ordered)
		pending := &parsedHeap{}
		next := 0
		for r := range results {
			heap.Push(pending, r)
			for pending.Len() > 0 && (*pending)[0].id == next {
				r := heap.Pop(pending).(parsed)
				select {
				case ordered <- r.sent:
				case <-ctx.Done():
					return ctx.Err()
				}
				next++
			}
		}
		// anything left pending follows a failed sentence; the producer
		// reports that failure
		return nil
	})

	g.Go(func() error {
		for sent := range ordered {
			if err := out.Write(sent); err != nil {
				return fmt.Errorf("write sentence %d: %w", written+1, err)
			}
			written++
		}
		return nil
	})

	err := g.Wait()
	logger.Info("batch parsed",
		zap.Int("workers", p.workers()),
		zap.Int("sentences", written),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(err))
	return written, err
}

// ParseFile parses a file sentence by sentence on the calling goroutine.
func (p *Parser) ParseFile(inPath, outPath string, inFormat, outFormat conll.Format) (int, error) {
	return p.parseFile(inPath, outPath, inFormat, outFormat, func(r SentenceReader, w SentenceWriter) (int, error) {
		var n int
		for {
			sent, err := r.Next()
			if err == io.EOF {
				return n, nil
			}
			if err != nil {
				return n, err
			}
			if err := p.Parse(sent); err != nil {
				return n, fmt.Errorf("sentence %d: %w", n+1, err)
			}
			if err := w.Write(sent); err != nil {
				return n, err
			}
			n++
		}
	})
}

// BatchParseFile parses a file on the worker pool, keeping sentence order.
func (p *Parser) BatchParseFile(ctx context.Context, inPath, outPath string, inFormat, outFormat conll.Format) (int, error) {
	return p.parseFile(inPath, outPath, inFormat, outFormat, func(r SentenceReader, w SentenceWriter) (int, error) {
		return p.Pipeline(ctx, r, w)
	})
}

func (p *Parser) parseFile(inPath, outPath string, inFormat, outFormat conll.Format, run func(SentenceReader, SentenceWriter) (int, error)) (int, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return 0, err
	}
	defer in.Close()
	out, err := os.Create(outPath)
	if err != nil {
		return 0, err
	}
	writer := conll.NewWriter(out, outFormat)
	n, err := run(conll.NewReader(in, inFormat), writer)
	if err != nil {
		out.Close()
		return n, err
	}
	if err := writer.Flush(); err != nil {
		out.Close()
		return n, err
	}
	return n, out.Close()
}
