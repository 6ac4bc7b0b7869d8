// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package fofn

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/grailbio/base/file"
)

// FileType represents the type of an input reference.
type FileType int

const (
	// Unknown is a sentinel.
	Unknown FileType = iota
	// BAM file
	BAM
	// FOFN is a file of file names.
	FOFN
)

const (
	bamSuffix  = ".bam"
	fofnSuffix = ".fofn"
)

// String implements fmt.Stringer.
func (t FileType) String() string {
	switch t {
	case BAM:
		return "bam"
	case FOFN:
		return "fofn"
	default:
		return "unknown"
	}
}

// GuessFileType returns the file type from the pathname. The suffix match is
// case-insensitive, so "reads.BAM" is a BAM file. Returns Unknown if the path
// is neither a BAM nor a FOFN.
func GuessFileType(path string) FileType {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, fofnSuffix):
		return FOFN
	case strings.HasSuffix(lower, bamSuffix):
		return BAM
	}
	return Unknown
}

// Extension returns the part of the last path element following its last
// period, or "" if the element has no period. Extension("a/b.c/d") is "".
func Extension(path string) string {
	base := path[strings.LastIndexByte(path, '/')+1:]
	dot := strings.LastIndexByte(base, '.')
	if dot < 0 {
		return ""
	}
	return base[dot+1:]
}

// AbsolutePath returns the canonical absolute form of a local path, with
// symlinks resolved. Paths with a URL scheme ("s3://...") are returned
// unchanged, as is any path that cannot be resolved.
func AbsolutePath(path string) string {
	if scheme, _, err := file.ParsePath(path); err == nil && scheme != "" {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if abs, err = filepath.EvalSymlinks(abs); err != nil {
		return path
	}
	return abs
}

// Exists reports whether an entry exists at path.
func Exists(ctx context.Context, path string) bool {
	if scheme, _, err := file.ParsePath(path); err == nil && scheme != "" {
		_, err := file.Stat(ctx, path)
		return err == nil
	}
	_, err := os.Stat(path)
	return err == nil
}
