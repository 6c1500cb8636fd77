package sampleio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// TextReader reads samples from delimited text.
type TextReader[F Float] struct {
	sc    *bufio.Scanner
	bits  int
	count int
	done  bool
	err   error
}

// NewTextReader creates a reader over r.
func NewTextReader[F Float](r io.Reader) *TextReader[F] {
	sc := bufio.NewScanner(r)
	sc.Split(SplitFields)
	return &TextReader[F]{sc: sc, bits: bitSize[F]()}
}

// ReadChunk fills dst with up to len(dst) real samples.
func (r *TextReader[F]) ReadChunk(dst []F) (int, error) {
	n := 0
	for n < len(dst) {
		v, ok, err := r.next()
		if err != nil {
			return n, err
		}
		if !ok {
			break
		}
		dst[n] = v
		n++
	}
	if n == 0 && len(dst) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

// ReadIQ fills re and im with up to min(len(re), len(im)) complex samples,
// each stored as a real token followed by an imaginary token. A dangling
// real part at the end of the stream is reported through Err.
func (r *TextReader[F]) ReadIQ(re, im []F) (int, error) {
	limit := min(len(re), len(im))
	n := 0
	for n < limit {
		x, ok, err := r.next()
		if err != nil {
			return n, err
		}
		if !ok {
			break
		}
		y, ok, err := r.next()
		if err != nil {
			return n, err
		}
		if !ok {
			if r.err == nil {
				r.err = fmt.Errorf("%w: sample %d has no imaginary part", ErrMalformedSample, r.count)
			}
			break
		}
		re[n], im[n] = x, y
		n++
	}
	if n == 0 && limit > 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Err returns the parse error that ended the stream, or nil.
func (r *TextReader[F]) Err() error {
	return r.err
}

// next returns the next parsed token. ok is false at end of stream or after
// a malformed token; err is reserved for read failures.
func (r *TextReader[F]) next() (v F, ok bool, err error) {
	if r.done {
		return 0, false, nil
	}
	if !r.sc.Scan() {
		r.done = true
		if err := r.sc.Err(); err != nil {
			return 0, false, fmt.Errorf("reading samples: %w", err)
		}
		return 0, false, nil
	}

	x, perr := strconv.ParseFloat(r.sc.Text(), r.bits)
	if perr != nil {
		r.done = true
		r.err = fmt.Errorf("%w: token %d: %w", ErrMalformedSample, r.count+1, perr)
		return 0, false, nil
	}
	r.count++
	return F(x), true, nil
}

// TextWriter writes one sample per line.
type TextWriter[F Float] struct {
	w         *bufio.Writer
	precision int
	bits      int
	buf       []byte
}

// NewTextWriter creates a writer. precision is the number of significant
// digits; -1 writes the shortest representation that reads back exactly.
func NewTextWriter[F Float](w io.Writer, precision int) *TextWriter[F] {
	return &TextWriter[F]{
		w:         bufio.NewWriter(w),
		precision: precision,
		bits:      bitSize[F](),
		buf:       make([]byte, 0, formatBufSize),
	}
}

// WriteChunk appends src to the output.
func (w *TextWriter[F]) WriteChunk(src []F) error {
	for _, v := range src {
		w.buf = strconv.AppendFloat(w.buf[:0], float64(v), 'g', w.precision, w.bits)
		w.buf = append(w.buf, '\n')
		if _, err := w.w.Write(w.buf); err != nil {
			return fmt.Errorf("writing samples: %w", err)
		}
	}
	return nil
}

// Flush writes any buffered output.
func (w *TextWriter[F]) Flush() error {
	return w.w.Flush()
}

// Close flushes. The underlying writer stays open.
func (w *TextWriter[F]) Close() error {
	return w.Flush()
}
