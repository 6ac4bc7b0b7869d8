// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package dataset

import (
	"context"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/hts/bam"
	"github.com/grailbio/hts/sam"
	"github.com/pkg/errors"
)

// DataSet is a list of BAM files together with their headers.
type DataSet struct {
	// Paths lists the BAM files, in input order.
	Paths []string
	// Headers[i] is the header of Paths[i].
	Headers []*sam.Header
}

// ReadHeader reads the SAM header of the BAM file at path.
func ReadHeader(ctx context.Context, path string) (h *sam.Header, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer file.CloseAndReport(ctx, in, &err)
	r, err := bam.NewReader(in.Reader(ctx), 1)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: read bam header", path)
	}
	h = r.Header()
	if e := r.Close(); e != nil {
		return nil, errors.Wrapf(e, "%s: close bam", path)
	}
	return h, nil
}

// Open reads the headers of the given BAM files in parallel. Paths are
// typically produced by fofn.Resolve.
func Open(ctx context.Context, paths []string) (*DataSet, error) {
	ds := &DataSet{
		Paths:   append([]string(nil), paths...),
		Headers: make([]*sam.Header, len(paths)),
	}
	err := traverse.Each(len(paths), func(i int) error {
		h, err := ReadHeader(ctx, paths[i])
		if err != nil {
			return err
		}
		ds.Headers[i] = h
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Debug.Printf("dataset: read %d bam headers", len(paths))
	return ds, nil
}

// ReadGroups returns the decoded read groups of every file, in file order.
func (ds *DataSet) ReadGroups() []ReadGroup {
	var rgs []ReadGroup
	for _, h := range ds.Headers {
		for _, rg := range h.RGs() {
			rgs = append(rgs, NewReadGroup(rg))
		}
	}
	return rgs
}

// ValidBaseFeatures reports whether every read group of ds is either of an
// exempt chemistry or carries both IPD and PulseWidth. It fails if a read
// group's chemistry is unknown.
func (ds *DataSet) ValidBaseFeatures() (bool, error) {
	return ValidBaseFeatures(ds.Headers...)
}

// ValidBaseFeatures is DataSet.ValidBaseFeatures over explicit headers.
func ValidBaseFeatures(headers ...*sam.Header) (bool, error) {
	for _, h := range headers {
		for _, samRG := range h.RGs() {
			rg := NewReadGroup(samRG)
			chem, err := rg.SequencingChemistry()
			if err != nil {
				return false, errors.Wrapf(err, "read group %s", rg.ID)
			}
			if !RequiresCovariates(chem) {
				continue
			}
			if !rg.HasBaseFeature(IPD) || !rg.HasBaseFeature(PulseWidth) {
				log.Debug.Printf("read group %s (%s) lacks IPD or PulseWidth", rg.ID, chem)
				return false, nil
			}
		}
	}
	return true, nil
}
