// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package recursion holds the matrix types used by log-domain
// forward/backward recursions, and a diagnostic writer that prints such a
// matrix as true log probabilities.
//
// Recursions store each column in linear space, renormalised by its
// largest value to avoid underflow. The normalising factor is kept as a
// per-column log scale, so the log probability of cell (i, j) is
//
//	log(Get(i, j)) + LogScale(j) + undo(j + offset)
//
// where undo is a position dependent bias owned by the recursion (for
// example, removal of counter weights added per emitted base).
package recursion
