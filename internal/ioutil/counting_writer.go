// Package ioutil provides writer helpers used by the rendering code.
package ioutil

//go:generate go tool errtrace -w .

import (
	"io"
	"sync"

	"braces.dev/errtrace"
)

// CountingWriter wraps an io.Writer and tracks the total number of bytes written.
// After the first failed write all subsequent writes are skipped and the error is kept.
type CountingWriter struct {
	w   io.Writer
	num int
	err error
}

// WriteString writes all of ss in order.
func (cw *CountingWriter) WriteString(ss ...string) *CountingWriter {
	for _, s := range ss {
		if cw.err != nil {
			return cw
		}
		n, err := io.WriteString(cw.w, s)
		cw.num += n
		cw.err = err
	}
	return cw
}

// Call executes a RenderTo-style function against the underlying writer.
func (cw *CountingWriter) Call(fn func(io.Writer) (int, error)) *CountingWriter {
	if cw.err != nil {
		return cw
	}
	n, err := fn(cw.w)
	cw.num += n
	cw.err = err
	return cw
}

// Result returns the total number of bytes written and the first error encountered.
func (cw *CountingWriter) Result() (num int, err error) {
	return cw.num, errtrace.Wrap(cw.err)
}

var cntWrtPool = &sync.Pool{
	New: func() any { return &CountingWriter{} },
}

func GetCountingWriter(w io.Writer) *CountingWriter {
	cw := cntWrtPool.Get().(*CountingWriter) //nolint:forcetypeassert
	cw.w = w
	return cw
}

func FreeCountingWriter(cw *CountingWriter) {
	cw.w = nil
	cw.num = 0
	cw.err = nil
	cntWrtPool.Put(cw)
}
