package cmd

import (
	"context"
	"io"

	"github.com/grailbio/base/log"
	"github.com/grailbio/ccs/recursion"
)

type transcribeOpts struct {
	offset        int
	reversed      bool
	counterWeight float64
	out           string
}

func transcribe(ctx context.Context, opts transcribeOpts, path string, out io.Writer) error {
	m, err := recursion.ReadMatrixTSV(ctx, path)
	if err != nil {
		return err
	}
	log.Debug.Printf("transcribe %s: %dx%d matrix", path, m.Rows(), m.Columns())
	return recursion.Transcribe(out, m, recursion.CounterWeightUndo(opts.counterWeight), opts.offset, opts.reversed)
}
