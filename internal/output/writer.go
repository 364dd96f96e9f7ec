package output

import (
	"os"

	"golang.org/x/sys/unix"

	"github.com/dl/fastdir/internal/walker"
)

// Writer writes formatted output to stdout, using writev for batching.
type Writer struct {
	fd int
}

// NewWriter creates a Writer that writes to stdout.
func NewWriter() *Writer {
	return &Writer{fd: int(os.Stdout.Fd())}
}

// Write writes the given bytes to stdout using writev.
func (w *Writer) Write(data []byte) error {
	for len(data) > 0 {
		iovs := [][]byte{data}
		n, err := unix.Writev(w.fd, iovs)
		if err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// OrderedWriter receives directory listings from a channel and writes
// them in sequence order, so output is deterministic even with parallel
// walker workers.
type OrderedWriter struct {
	writer    *Writer
	formatter Formatter
	multiDir  bool
	buf       []byte
}

// NewOrderedWriter creates an OrderedWriter.
func NewOrderedWriter(w *Writer, f Formatter, multiDir bool) *OrderedWriter {
	return &OrderedWriter{
		writer:    w,
		formatter: f,
		multiDir:  multiDir,
	}
}

// WriteOrdered consumes listings from the channel, buffering
// out-of-order results and writing them in sequence-number order.
// onEntry is called once per reported entry; onErr once per failed
// directory. Either may be nil.
func (ow *OrderedWriter) WriteOrdered(results <-chan walker.DirResult, onEntry func(), onErr func(walker.DirResult)) {
	nextSeq := 1
	pending := make(map[int]walker.DirResult)

	for res := range results {
		if res.Seq == nextSeq {
			ow.writeResult(res, onEntry, onErr)
			nextSeq++
			// Flush any consecutive pending results.
			for {
				p, ok := pending[nextSeq]
				if !ok {
					break
				}
				ow.writeResult(p, onEntry, onErr)
				delete(pending, nextSeq)
				nextSeq++
			}
		} else {
			pending[res.Seq] = res
		}
	}
}

func (ow *OrderedWriter) writeResult(res walker.DirResult, onEntry func(), onErr func(walker.DirResult)) {
	if res.Err != nil {
		if onErr != nil {
			onErr(res)
		}
		return
	}
	if onEntry != nil {
		for range res.Entries {
			onEntry()
		}
	}
	ow.buf = ow.formatter.Format(ow.buf[:0], res, ow.multiDir)
	ow.writer.Write(ow.buf)
}
