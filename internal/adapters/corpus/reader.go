// Package corpus reads tabular corpus files into records.
package corpus

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.trai.ch/tagger/internal/core/domain"
	"go.trai.ch/tagger/internal/core/ports"
	"go.trai.ch/zerr"
)

// StdinPattern selects standard input instead of files.
const StdinPattern = "-"

// TokenColumn is the header cell that names the token column.
const TokenColumn = "token"

const maxLineSize = 1 << 20

// Reader implements ports.CorpusReader over delimited text files.
type Reader struct {
	logger   ports.Logger
	resolver ports.InputResolver
	stdin    io.Reader
}

// NewReader creates a Reader that expands patterns with resolver and reports skipped rows to logger.
func NewReader(logger ports.Logger, resolver ports.InputResolver) *Reader {
	return &Reader{logger: logger, resolver: resolver, stdin: os.Stdin}
}

// WithStdin replaces the stream read for StdinPattern.
func (r *Reader) WithStdin(in io.Reader) *Reader {
	r.stdin = in
	return r
}

// Files returns the files matched by pattern in lexical order.
func (r *Reader) Files(pattern string) ([]string, error) {
	if pattern == StdinPattern {
		return nil, nil
	}
	return r.resolver.Resolve(pattern)
}

// Open starts reading the files matched by pattern.
func (r *Reader) Open(ctx context.Context, pattern string, format domain.CorpusFormat) (ports.RecordReader, error) {
	rr := &recordReader{
		ctx:    ctx,
		logger: r.logger,
		format: format,
	}

	if pattern == StdinPattern {
		rr.stdin = r.stdin
		rr.files = []string{StdinPattern}
		return rr, nil
	}

	files, err := r.Files(pattern)
	if err != nil {
		return nil, err
	}
	rr.files = files
	return rr, nil
}

// recordReader walks the files one document at a time.
type recordReader struct {
	ctx    context.Context
	logger ports.Logger
	format domain.CorpusFormat
	files  []string
	stdin  io.Reader

	doc     int
	file    *os.File
	scanner *bufio.Scanner
	row     int
	columns []string
	token   int
}

func (rr *recordReader) openNext() error {
	if rr.doc >= len(rr.files) {
		return io.EOF
	}
	path := rr.files[rr.doc]
	rr.doc++
	rr.row = 0
	rr.columns = nil
	rr.token = 0

	var in io.Reader
	if path == StdinPattern {
		in = rr.stdin
	} else {
		// #nosec G304 -- corpus paths come from the user's settings
		f, err := os.Open(path)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrCorpusOpenFailed.Error()), "file", path)
		}
		rr.file = f
		in = f
	}

	rr.scanner = bufio.NewScanner(in)
	rr.scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	if !rr.format.Header {
		rr.columns = append([]string{TokenColumn}, rr.format.TasksOrder...)
	}
	return nil
}

func (rr *recordReader) closeFile() error {
	rr.scanner = nil
	if rr.file == nil {
		return nil
	}
	err := rr.file.Close()
	rr.file = nil
	return err
}

// Next returns the next well-formed record.
func (rr *recordReader) Next() (domain.Record, error) {
	for {
		if err := rr.ctx.Err(); err != nil {
			return domain.Record{}, err
		}

		if rr.scanner == nil {
			if err := rr.openNext(); err != nil {
				return domain.Record{}, err
			}
		}

		if !rr.scanner.Scan() {
			path := rr.files[rr.doc-1]
			scanErr := rr.scanner.Err()
			if err := rr.closeFile(); err != nil && scanErr == nil {
				scanErr = err
			}
			if scanErr != nil {
				return domain.Record{}, zerr.With(zerr.Wrap(scanErr, domain.ErrCorpusReadFailed.Error()), "file", path)
			}
			continue
		}

		rr.row++
		line := strings.TrimRight(rr.scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if rr.columns == nil {
			rr.setHeader(strings.Split(line, rr.format.Sep))
			continue
		}

		rec, err := rr.parse(line)
		if err == nil {
			return rec, nil
		}
		if rr.format.OnDataError != domain.DataErrorSkip {
			return domain.Record{}, err
		}
		rr.logger.Warn(fmt.Sprintf("skipping row %d of %s: %v", rr.row, rr.files[rr.doc-1], err))
	}
}

func (rr *recordReader) setHeader(cells []string) {
	rr.columns = cells
	rr.token = 0
	for i, c := range cells {
		if c == TokenColumn {
			rr.token = i
			break
		}
	}
}

func (rr *recordReader) parse(line string) (domain.Record, error) {
	path := rr.files[rr.doc-1]
	fields := strings.Split(line, rr.format.Sep)

	if len(fields) != len(rr.columns) {
		err := zerr.With(domain.ErrFieldCountMismatch, "file", path)
		err = zerr.With(err, "row", rr.row)
		err = zerr.With(err, "expected", len(rr.columns))
		return domain.Record{}, zerr.With(err, "got", len(fields))
	}

	token := fields[rr.token]
	if token == "" {
		err := zerr.With(domain.ErrMalformedRow, "file", path)
		err = zerr.With(err, "row", rr.row)
		return domain.Record{}, zerr.With(err, "reason", "empty token")
	}

	values := make(map[string]string, len(fields)-1)
	for i, v := range fields {
		if i == rr.token || v == "" {
			continue
		}
		values[rr.columns[i]] = v
	}

	return domain.Record{
		Token:  token,
		Fields: values,
		Source: path,
		Row:    rr.row,
		Doc:    rr.doc,
	}, nil
}

// Close releases the file being read.
func (rr *recordReader) Close() error {
	return rr.closeFile()
}
