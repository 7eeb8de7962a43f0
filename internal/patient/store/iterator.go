package store

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"strings"

	"patients/internal/audit"
	"patients/internal/patient"
	"patients/internal/platform/tracer"
	"patients/internal/sentinel"
	dErrors "patients/pkg/domain-errors"
	"patients/pkg/platform/validation"
)

const unbounded = -1

// Iterator walks the file one line per Next, keeping only a byte cursor
// between calls. Each line is rebuilt through patient.Create, so stored data is
// re-validated on every load.
type Iterator struct {
	store     *Store
	offset    int64
	remaining int
}

// Offset returns the byte cursor of the next line to read.
func (it *Iterator) Offset() int64 {
	return it.offset
}

// Reset moves the cursor back to the start of the file. The limit is not restored.
func (it *Iterator) Reset() {
	it.offset = 0
}

// Limit returns a new iterator starting at this iterator's cursor that yields at
// most n records. The receiver is not advanced by the returned iterator.
func (it *Iterator) Limit(n int) (*Iterator, error) {
	if err := validation.CheckLimit(n); err != nil {
		return nil, err
	}
	if it.remaining != unbounded && it.remaining < n {
		n = it.remaining
	}
	return &Iterator{store: it.store, offset: it.offset, remaining: n}, nil
}

// Next reads the line at the cursor and rebuilds its patient. It returns
// sentinel.ErrExhausted when the limit is used up, the read is empty or the file
// does not exist. A line that fails validation is consumed: the cursor moves past
// it and the rejection is returned.
func (it *Iterator) Next(ctx context.Context) (p *patient.Patient, err error) {
	if it.remaining == 0 {
		return nil, sentinel.ErrExhausted
	}

	s := it.store
	_, span := s.tracer.Start(ctx, tracer.SpanStoreNext,
		tracer.String(tracer.AttrPath, s.path),
		tracer.Int64(tracer.AttrOffset, it.offset),
		tracer.Int64(tracer.AttrRemaining, int64(it.remaining)),
	)
	defer func() {
		switch {
		case errors.Is(err, sentinel.ErrExhausted):
			span.SetAttributes(tracer.Bool(tracer.AttrExhausted, true))
			span.End(nil)
		case err != nil:
			s.metrics.IncStoreFailure(string(dErrors.CodeOf(err)))
			span.End(err)
		default:
			s.metrics.IncRecordsLoaded()
			span.SetAttributes(tracer.String(tracer.AttrDocumentID, tracer.HashDocumentID(p.DocumentID())))
			span.End(nil)
		}
	}()

	line, n, err := s.readLine(it.offset)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, sentinel.ErrExhausted
	}
	it.offset += int64(n)
	if it.remaining > 0 {
		it.remaining--
	}
	span.SetAttributes(tracer.Int64(tracer.AttrBytes, int64(n)))

	p, err = s.parse(line)
	if err != nil {
		s.sink.Error(audit.Event{
			Subject: audit.SubjectLoad,
			Message: fmt.Sprintf("failed to load patient at offset %d", it.offset-int64(n)),
			Value:   line,
			Reason:  err.Error(),
		})
		return nil, err
	}
	return p, nil
}

// All yields patients until exhaustion. A failed line is yielded as an error and
// ends the sequence.
func (it *Iterator) All(ctx context.Context) iter.Seq2[*patient.Patient, error] {
	return func(yield func(*patient.Patient, error) bool) {
		for {
			p, err := it.Next(ctx)
			if errors.Is(err, sentinel.ErrExhausted) {
				return
			}
			if !yield(p, err) || err != nil {
				return
			}
		}
	}
}

// readLine returns the line at offset without its terminator and the number of
// bytes consumed, terminator included.
func (s *Store) readLine(offset int64) (string, int, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", 0, nil
	}
	if err != nil {
		return "", 0, classifyIO(err, "open patient file")
	}
	defer f.Close()

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return "", 0, classifyIO(err, "seek patient file")
	}

	raw, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", 0, classifyIO(err, "read patient file")
	}
	return strings.TrimRight(raw, "\r\n"), len(raw), nil
}

func (s *Store) parse(line string) (*patient.Patient, error) {
	if err := validation.CheckStringLength("line", line, validation.MaxLineLength); err != nil {
		return nil, err
	}
	values := strings.Split(line, patient.Delimiter)
	if err := validation.CheckFieldCount(len(values), validation.RecordFieldCount); err != nil {
		return nil, err
	}
	return patient.Create(s.sink, values[0], values[1], values[2], values[3], values[4], values[5])
}
