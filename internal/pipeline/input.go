package pipeline

import (
	"bufio"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/cache/internal/cache"
	"github.com/GriffinCanCode/cache/internal/fingerprint"
	"github.com/GriffinCanCode/cache/internal/keyspec"
	"github.com/GriffinCanCode/cache/internal/logging"
	"github.com/GriffinCanCode/cache/internal/metrics"
)

// maxLineSize bounds how long a single upstream line may be; generous
// enough for any realistic preprocessing pipeline while still catching a
// runaway unterminated stream.
const maxLineSize = 64 * 1024 * 1024

// InputConfig bundles the Input worker's dependencies.
type InputConfig struct {
	Upstream   io.Reader
	ChildStdin io.WriteCloser
	Store      *cache.Store
	Queue      *Queue
	Spec       keyspec.Spec
	FlushRate  int
	Metrics    *metrics.Registry // nil disables instrumentation
	Log        *logging.Logger
}

// Input reads upstream lines, fingerprints each one, consults the cache,
// forwards novel lines to the child, and enqueues one handle per line in
// strict input order.
//
// On any terminating condition — clean EOF, an upstream read error, or a
// write error to the child — it closes the child's stdin and enqueues the
// sentinel exactly once before returning, so the Output worker can always
// drain the queue and exit. A non-nil return is fatal to the run; the
// caller is responsible for propagating that to the process exit code.
func Input(cfg InputConfig) error {
	flushRate := cfg.FlushRate
	if flushRate <= 0 {
		flushRate = 4096
	}

	w := bufio.NewWriterSize(cfg.ChildStdin, 64*1024)
	scanner := bufio.NewScanner(cfg.Upstream)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	flushCount := flushRate
	var fatalErr error

	for scanner.Scan() {
		line := scanner.Bytes()

		fp := fingerprint.Compute(line, cfg.Spec)
		h, isNew := cfg.Store.LookupOrInsert(fp)

		if isNew {
			if cfg.Metrics != nil {
				cfg.Metrics.CacheMisses.Inc()
			}
			n, err := w.Write(line)
			if err == nil {
				err = w.WriteByte('\n')
			}
			if cfg.Metrics != nil {
				cfg.Metrics.ChildBytesIn.Add(float64(n + 1))
			}
			if err != nil {
				fatalErr = fmt.Errorf("writing novel line to child stdin: %w", err)
				break
			}

			flushCount--
			if flushCount == 0 {
				if err := w.Flush(); err != nil {
					fatalErr = fmt.Errorf("flushing child stdin: %w", err)
					break
				}
				flushCount = flushRate
			}
		} else if cfg.Metrics != nil {
			cfg.Metrics.CacheHits.Inc()
		}

		if cfg.Metrics != nil {
			cfg.Metrics.LinesIn.Inc()
			cfg.Metrics.QueueDepth.Set(float64(cfg.Queue.Len() + 1))
		}
		cfg.Queue.Produce(Item{Handle: h})

		if cfg.Log != nil {
			cfg.Log.Debug("processed input line", zap.Bool("novel", isNew))
		}
	}

	if fatalErr == nil {
		if err := scanner.Err(); err != nil {
			fatalErr = fmt.Errorf("reading upstream input: %w", err)
		} else if err := w.Flush(); err != nil {
			fatalErr = fmt.Errorf("flushing child stdin: %w", err)
		}
	}

	closeErr := cfg.ChildStdin.Close()
	cfg.Queue.Produce(Item{Sentinel: true})

	if fatalErr != nil {
		return fatalErr
	}
	if closeErr != nil {
		return fmt.Errorf("closing child stdin: %w", closeErr)
	}
	return nil
}
