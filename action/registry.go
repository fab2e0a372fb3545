// Package action implements find's action primaries: -print, -fprint,
// -printf, -ls, -delete, -exec/-execdir, and -ok/-okdir. Each action is a
// method on Registry, which satisfies eval.Sinks so the evaluator can
// invoke actions without depending on process spawning or file output
// machinery directly.
package action

import (
	"bufio"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/wayfarer-tools/findx/expr"
	"github.com/wayfarer-tools/findx/logging"
	"github.com/wayfarer-tools/findx/pkg/must"
	"github.com/wayfarer-tools/findx/pkg/stream"
)

// Registry holds the shared state actions need: the standard output stream,
// a cache of -fprint/-fprintf/-fls output files (opened once and reused
// across matches, as find itself does), a logger, and the per-predicate
// accumulators backing "+"-terminated -exec/-execdir primaries.
type Registry struct {
	// Stdout is where -print/-printf/-ls write.
	Stdout io.Writer
	// Logger is used for warnings raised by best-effort cleanup.
	Logger *logging.Logger

	bytesWritten    uint64
	outputFilesLock sync.Mutex
	outputFiles     map[string]*outputFile

	execLock    sync.Mutex
	execBatches map[*expr.Node]*execBatchState
}

// outputFile is a lazily opened -fprint/-fprintf/-fls destination, wrapped
// in a buffered writer and a ValveWriter so that a -quit mid-walk can shut
// off further writes cleanly while the final flush/close still happens
// exactly once.
type outputFile struct {
	file  *os.File
	buf   *bufio.Writer
	valve *stream.ValveWriter
}

// NewRegistry constructs a Registry writing standard output to stdout. Every
// byte written through Stdout is tallied via an audit callback, available
// afterward through BytesWritten, for a closing "-D exec" summary line.
func NewRegistry(stdout io.Writer, logger *logging.Logger) *Registry {
	r := &Registry{
		Logger:      logger,
		outputFiles: make(map[string]*outputFile),
	}
	r.Stdout = stream.NewAuditWriter(stdout, func(n uint64) {
		atomic.AddUint64(&r.bytesWritten, n)
	})
	return r
}

// BytesWritten reports the total number of bytes written to standard output
// across every -print/-printf/-ls invocation so far.
func (r *Registry) BytesWritten() uint64 {
	return atomic.LoadUint64(&r.bytesWritten)
}

// openOutputFile returns the cached writer for path, opening (truncating)
// it on first use.
func (r *Registry) openOutputFile(path string) (io.Writer, error) {
	r.outputFilesLock.Lock()
	defer r.outputFilesLock.Unlock()

	if existing, ok := r.outputFiles[path]; ok {
		return existing.valve, nil
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	buffered := bufio.NewWriter(file)
	valve := stream.NewValveWriter(buffered)
	r.outputFiles[path] = &outputFile{
		file:  file,
		buf:   buffered,
		valve: valve,
	}
	return valve, nil
}

// Close flushes any remaining "+"-terminated -exec/-execdir batches and
// every output file opened via -fprint/-fprintf/-fls, logging (rather than
// returning) any failures, since this runs during final cleanup after the
// walk has already produced its result. Use FlushExecBatches directly
// beforehand if the aggregate exec success/failure needs to affect the
// program's exit status.
func (r *Registry) Close() {
	if _, err := r.FlushExecBatches(); err != nil {
		r.Logger.Warnf("unable to flush a pending -exec/-execdir batch: %v", err)
	}

	r.outputFilesLock.Lock()
	defer r.outputFilesLock.Unlock()

	var closers []io.Closer
	for _, of := range r.outputFiles {
		of.valve.Shut()
		closers = append(closers, stream.NewFlushCloser(of.buf), of.file)
	}
	must.Succeed(stream.NewMultiCloser(closers...).Close(), "flush and close output files", r.Logger)
}
