package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/ccs/encoding/fofn"
)

type flattenOpts struct {
	abs         bool
	checkExists bool
	out         string
}

func flatten(ctx context.Context, opts flattenOpts, refs []string, out io.Writer) error {
	paths, err := fofn.Resolve(ctx, refs)
	if err != nil {
		return err
	}
	log.Printf("flatten: %d refs resolved to %d bam files", len(refs), len(paths))
	w := bufio.NewWriter(out)
	for _, path := range paths {
		if opts.checkExists && !fofn.Exists(ctx, path) {
			return errors.E(errors.NotExist, fmt.Sprintf("%s: bam file does not exist", path))
		}
		if opts.abs {
			path = fofn.AbsolutePath(path)
		}
		w.WriteString(path)
		w.WriteByte('\n')
	}
	return w.Flush()
}
