// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package fofn

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"v.io/x/lib/vlog"
)

// InvalidReferenceError is returned by Resolve when a reference is neither a
// BAM nor a FOFN.
type InvalidReferenceError struct {
	// Path is the offending reference.
	Path string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("%q: not a .fofn or .bam file", e.Path)
}

// CyclicReferenceError is returned by Resolve when a FOFN lists itself,
// directly or through other FOFNs.
type CyclicReferenceError struct {
	// Path is the FOFN that was reopened.
	Path string
	// Chain lists the FOFNs open at the time, outermost first.
	Chain []string
}

func (e *CyclicReferenceError) Error() string {
	return fmt.Sprintf("%q: cyclic fofn reference (%s -> %s)",
		e.Path, strings.Join(e.Chain, " -> "), e.Path)
}

// resolver holds the state of one Resolve call.
type resolver struct {
	ctx context.Context
	out []string
	// open is the set of canonical FOFN paths on the current expansion stack.
	open  map[string]bool
	chain []string
}

// Resolve expands refs into a flat list of BAM paths. BAM references are
// copied verbatim. Each FOFN is read line by line; every line is trimmed of
// surrounding whitespace and resolved recursively in place, so a blank line
// is an invalid (empty) reference. A final newline does not produce a line. The result is a depth-first, left-to-right
// flattening of refs.
//
// Resolve fails with *InvalidReferenceError if any reference, at any depth,
// is neither a BAM nor a FOFN, and with *CyclicReferenceError if a FOFN
// includes itself. Errors opening or reading a FOFN are returned with the
// FOFN path attached. There is no partial result on error.
func Resolve(ctx context.Context, refs []string) ([]string, error) {
	r := resolver{ctx: ctx, open: map[string]bool{}}
	for _, ref := range refs {
		if err := r.resolve(ref); err != nil {
			return nil, err
		}
	}
	return r.out, nil
}

func (r *resolver) resolve(ref string) error {
	switch GuessFileType(ref) {
	case FOFN:
		return r.expand(ref)
	case BAM:
		r.out = append(r.out, ref)
		return nil
	}
	return &InvalidReferenceError{Path: ref}
}

func (r *resolver) expand(path string) (err error) {
	canon := AbsolutePath(path)
	if r.open[canon] {
		return &CyclicReferenceError{Path: path, Chain: append([]string(nil), r.chain...)}
	}
	r.open[canon] = true
	r.chain = append(r.chain, path)
	defer func() {
		delete(r.open, canon)
		r.chain = r.chain[:len(r.chain)-1]
	}()

	in, err := file.Open(r.ctx, path)
	if err != nil {
		return errors.E(err, "open fofn", path)
	}
	defer func() {
		if e := in.Close(r.ctx); e != nil && err == nil {
			err = errors.E(e, "close fofn", path)
		}
	}()
	vlog.VI(1).Infof("%v: expanding fofn", path)
	sc := bufio.NewScanner(in.Reader(r.ctx))
	for sc.Scan() {
		if err := r.resolve(strings.TrimSpace(sc.Text())); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return errors.E(err, "read fofn", path)
	}
	return nil
}
