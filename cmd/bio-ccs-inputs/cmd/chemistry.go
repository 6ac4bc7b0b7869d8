package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/ccs/dataset"
	"github.com/grailbio/ccs/encoding/fofn"
)

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// checkChemistry resolves refs, prints one TSV line per read group, and
// fails if the dataset lacks required base features.
func checkChemistry(ctx context.Context, refs []string, out io.Writer) error {
	paths, err := fofn.Resolve(ctx, refs)
	if err != nil {
		return err
	}
	ds, err := dataset.Open(ctx, paths)
	if err != nil {
		return err
	}
	w := tsv.NewWriter(out)
	w.WriteString("#PATH\tREADGROUP\tCHEMISTRY\tIPD\tPULSEWIDTH")
	if err := w.EndLine(); err != nil {
		return err
	}
	for i, h := range ds.Headers {
		for _, samRG := range h.RGs() {
			rg := dataset.NewReadGroup(samRG)
			chem, err := rg.SequencingChemistry()
			if err != nil {
				log.Error.Printf("%s: %v", ds.Paths[i], err)
				chem = "unknown"
			}
			w.WriteString(ds.Paths[i])
			w.WriteString(rg.ID)
			w.WriteString(chem)
			w.WriteString(yesNo(rg.HasBaseFeature(dataset.IPD)))
			w.WriteString(yesNo(rg.HasBaseFeature(dataset.PulseWidth)))
			if err := w.EndLine(); err != nil {
				return err
			}
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	ok, err := ds.ValidBaseFeatures()
	if err != nil {
		return err
	}
	if !ok {
		return errors.E(errors.Invalid, fmt.Sprintf("%d bam files: missing IPD or PulseWidth base features required by the chemistry", len(paths)))
	}
	return nil
}
