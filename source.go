package dimuplot

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnknownFormat is returned when no reader handles an input file.
var ErrUnknownFormat = errors.New("dimuplot: unknown input format")

// Source is a row-addressable collection of events.
//
// Range calls fn for every row in [beg, end), in order. The Event passed to
// fn is only valid until fn returns. Range may be called concurrently on
// disjoint ranges.
type Source interface {
	Len() int64
	Range(ctx context.Context, beg, end int64, fn func(row int64, ev *Event) error) error
	Close() error
}

// Table is an in-memory Source.
type Table []Event

func (t Table) Len() int64 { return int64(len(t)) }

func (t Table) Range(ctx context.Context, beg, end int64, fn func(int64, *Event) error) error {
	if beg < 0 || end > t.Len() || beg > end {
		return fmt.Errorf("dimuplot: invalid range [%d, %d) for %d rows", beg, end, t.Len())
	}
	for i := beg; i < end; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(i, &t[i]); err != nil {
			return err
		}
	}
	return nil
}

func (t Table) Close() error { return nil }

// Open opens fname with the reader for format. An empty format picks the
// reader from the file extension.
func Open(fname, format string, cfg Config) (Source, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(fname)), ".")
	}

	var (
		src Source
		err error
	)
	switch format {
	case "root":
		src, err = OpenROOT(fname, cfg.Tree)
	case "proio":
		src, err = OpenProio(fname, cfg.ProioTag)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return src, nil
}
