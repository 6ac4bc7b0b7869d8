// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package fofn flattens lists of input references into BAM paths.
//
// A reference is either a BAM file, used as is, or a FOFN ("file of file
// names"): a text file listing one reference per line. FOFNs may list other
// FOFNs; Resolve expands them depth first and preserves input order.
package fofn
