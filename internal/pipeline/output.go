package pipeline

import (
	"bufio"
	"fmt"
	"io"

	"github.com/GriffinCanCode/cache/internal/cache"
	"github.com/GriffinCanCode/cache/internal/logging"
	"github.com/GriffinCanCode/cache/internal/metrics"
)

// OutputConfig bundles the Output worker's dependencies.
type OutputConfig struct {
	ChildStdout io.Reader
	Downstream  io.Writer
	Store       *cache.Store
	Queue       *Queue
	Metrics     *metrics.Registry // nil disables instrumentation
	Log         *logging.Logger
}

// Output consumes handles from the queue until the sentinel. For each
// handle whose slot is still Pending, it reads exactly one line from the
// child's stdout, installs it into the cache, and emits the (now present)
// bytes to downstream stdout, in input order.
//
// Any read error from the child before the sentinel, or the child closing
// its stdout while Pending handles remain, is fatal and returned.
func Output(cfg OutputConfig) error {
	childOut := bufio.NewReaderSize(cfg.ChildStdout, 64*1024)
	out := bufio.NewWriterSize(cfg.Downstream, 64*1024)
	defer out.Flush()

	for {
		item := cfg.Queue.Consume()
		if item.Sentinel {
			return out.Flush()
		}

		h := item.Handle
		if !h.Ready() {
			line, err := readChildLine(childOut)
			if err != nil {
				return fmt.Errorf("reading child stdout: %w", err)
			}
			if cfg.Metrics != nil {
				cfg.Metrics.ChildBytesOut.Add(float64(len(line) + 1))
			}
			cfg.Store.MarkPresent(h, line)
		}

		value := h.Read()
		if _, err := out.Write(value); err != nil {
			return fmt.Errorf("writing downstream output: %w", err)
		}
		if err := out.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing downstream output: %w", err)
		}

		if cfg.Metrics != nil {
			cfg.Metrics.LinesOut.Inc()
			cfg.Metrics.QueueDepth.Set(float64(cfg.Queue.Len()))
		}
		if cfg.Log != nil {
			cfg.Log.Debug("emitted output line")
		}
	}
}

// readChildLine reads one newline-terminated line from the child's stdout.
// The child closing its stream with no bytes left to read (at a Pending
// handle) is reported as io.ErrUnexpectedEOF: the child exited while this
// run still owed an output line. A final line that has bytes but no
// trailing newline is returned as a complete line.
func readChildLine(r *bufio.Reader) ([]byte, error) {
	line, err := r.ReadBytes('\n')
	if err != nil {
		if err == io.EOF {
			if len(line) == 0 {
				return nil, io.ErrUnexpectedEOF
			}
			// Last line without a trailing newline: accept it, matching the
			// tolerant convention used for upstream input.
			return line, nil
		}
		return nil, err
	}
	return line[:len(line)-1], nil
}
