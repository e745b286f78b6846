// Package convert wires the symphony decoding packages together into a
// single run: load the code tables and optional item index, stream the
// history file through the decoder, and emit decoded records.
package convert

import (
	"bufio"
	"io"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sdsymphony/hist2json/pkg/compression"
	"github.com/sdsymphony/hist2json/pkg/config"
	"github.com/sdsymphony/hist2json/pkg/histerrors"
	jsonpool "github.com/sdsymphony/hist2json/pkg/json"
	"github.com/sdsymphony/hist2json/pkg/logger"
	"github.com/sdsymphony/hist2json/pkg/metrics"
	"github.com/sdsymphony/hist2json/pkg/symphony/codes"
	"github.com/sdsymphony/hist2json/pkg/symphony/decode"
	"github.com/sdsymphony/hist2json/pkg/symphony/itemindex"
	"github.com/sdsymphony/hist2json/pkg/symphony/stream"
)

// Result reports the outcome of a single run for the CLI's end-of-run
// summary.
type Result struct {
	Summary *metrics.RunSummary
	Journal map[int]string
}

// Run executes a complete decode: it loads the configured code tables and
// optional item index, then streams cfg.HistPath through the decoder and
// writes decoded records to cfg.OutputPath (or stdout).
func Run(cfg *config.RunConfig) (*Result, error) {
	log := logger.Get().With(zap.String("hist_path", cfg.HistPath))
	jsonpool.SetPoolingEnabled(cfg.Performance.EnablePools)

	tables, err := loadTables(cfg, log)
	if err != nil {
		return nil, err
	}

	items, err := loadItems(cfg, log)
	if err != nil {
		return nil, err
	}

	decoder := decode.New(tables, items)

	in, err := compression.OpenReader(cfg.HistPath)
	if err != nil {
		return nil, histerrors.Wrap(err, histerrors.ErrorTypeFile, "failed to open history file").
			WithDetail("path", cfg.HistPath)
	}
	defer in.Close()

	out, closeOut, err := openOutput(cfg.OutputPath, cfg.Performance.FlushInterval)
	if err != nil {
		return nil, err
	}
	defer closeOut()

	driver := stream.NewDriver(decoder, cfg.RangeStart, cfg.RangeEnd)
	src := stream.NewLineSource(in, cfg.Performance.BufferSize)

	var emitter stream.Emitter
	if cfg.DocumentStore {
		emitter = stream.NewDocumentEmitter(out)
	} else {
		emitter = stream.NewArrayEmitter(out)
	}

	timer := metrics.NewTimer()
	summary, err := driver.Run(src, emitter)
	metrics.ProcessingLatency.Observe(timer.Stop().Seconds())
	if err != nil {
		return nil, err
	}

	log.Info("decode run complete",
		zap.Int64("lines_read", summary.LinesRead),
		zap.Int64("lines_gated", summary.LinesGated),
		zap.Int64("records_decoded", summary.RecordsDecoded),
		zap.Int64("records_skipped", summary.RecordsSkipped))

	return &Result{Summary: summary, Journal: driver.Journal.Entries()}, nil
}

func loadTables(cfg *config.RunConfig, log *zap.Logger) (*codes.Tables, error) {
	tables := codes.NewTables()

	if err := codes.Load(cfg.CommandCodePath, tables.Command); err != nil {
		return nil, err
	}
	log.Debug("loaded command codes", zap.Int("count", tables.Command.Len()))

	if err := codes.Load(cfg.DataCodePath, tables.Data); err != nil {
		return nil, err
	}
	tables.Data.MergeExtras(codes.Extras())
	log.Debug("loaded data codes", zap.Int("count", tables.Data.Len()))

	if cfg.ClientCodePath != "" {
		if err := codes.Load(cfg.ClientCodePath, tables.Client); err != nil {
			return nil, err
		}
		log.Debug("loaded client-type codes", zap.Int("count", tables.Client.Len()))
	} else {
		log.Info("no client-type code table configured; dC fields will fall back to raw values")
	}

	return tables, nil
}

func loadItems(cfg *config.RunConfig, log *zap.Logger) (*itemindex.Index, error) {
	if !cfg.HasItemIndex() {
		log.Info("no item index configured; item-id enrichment disabled")
		return nil, nil
	}

	idx, err := itemindex.Load(cfg.ItemIndexPath)
	if err != nil {
		return nil, err
	}
	log.Info("loaded item index", zap.Int("entries", idx.Len()))
	return idx, nil
}

// syncWriter serializes Write and Flush against a bufio.Writer so a
// background flush ticker can run alongside the driver's writes without a
// data race; bufio.Writer itself is not safe for concurrent use.
type syncWriter struct {
	mu sync.Mutex
	bw *bufio.Writer
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.bw.Write(p)
}

func (w *syncWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.bw.Flush()
}

// openOutput opens path for writing, or returns stdout if path is empty.
// File output is wrapped in a bufio.Writer flushed on a ticker every
// flushInterval (config.RunConfig.Performance.FlushInterval), so a run
// writing a large array/NDJSON file makes partial progress visible to
// anything tailing it rather than buffering silently until close. A
// non-positive flushInterval disables the ticker; the final flush on close
// still runs.
func openOutput(path string, flushInterval time.Duration) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, histerrors.Wrap(err, histerrors.ErrorTypeFile, "failed to create output file").
			WithDetail("path", path)
	}

	w := &syncWriter{bw: bufio.NewWriter(f)}

	if flushInterval <= 0 {
		return w, func() { w.Flush(); f.Close() }, nil
	}

	done := make(chan struct{})
	ticker := time.NewTicker(flushInterval)
	go func() {
		for {
			select {
			case <-ticker.C:
				w.Flush()
			case <-done:
				return
			}
		}
	}()

	return w, func() {
		close(done)
		ticker.Stop()
		w.Flush()
		f.Close()
	}, nil
}
