// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package recursion

import (
	"bufio"
	"io"
	"math"
	"strconv"
)

// ScaleUndo maps an absolute template position to the log-domain bias a
// recursion added at that position. Transcribe adds it back.
type ScaleUndo func(pos int) float64

// NoUndo is a ScaleUndo for recursions that add no positional bias.
func NoUndo(int) float64 { return 0 }

// CounterWeightUndo returns the ScaleUndo for a recursion that multiplies
// every emission by counterWeight: the bias at position pos is
// pos*log(counterWeight), so the undo term is its negation.
func CounterWeightUndo(counterWeight float64) ScaleUndo {
	if counterWeight == 1 {
		return NoUndo
	}
	lw := math.Log(counterWeight)
	return func(pos int) float64 { return -lw * float64(pos) }
}

// Transcribe writes m to w in log space. The output is:
//
//	(rows, cols)
//	 (begin, end) ...          used row range of each column
//	lg: <TAB>s0<TAB>s1...      log scale of each column
//	lgS: <TAB>S0<TAB>S1...     running sum of the log scales
//	<TAB>v00<TAB>v01...        one line per row
//
// Cell values are log(m.Get(i, col)) + m.LogScale(col) + undo(col+offset).
// If reversed is true, each row lists columns from last to first; this lets
// backward recursions, which fill columns right to left, share the
// format. All numbers use fixed point with three fractional digits;
// non-finite values print as inf, -inf and nan.
//
// A nil undo is treated as NoUndo. Transcribe does not validate m.
func Transcribe(w io.Writer, m Matrix, undo ScaleUndo, offset int, reversed bool) error {
	if undo == nil {
		undo = NoUndo
	}
	var (
		bw    = bufio.NewWriter(w)
		nRows = m.Rows()
		nCols = m.Columns()
		buf   []byte
	)
	buf = append(buf, '(')
	buf = strconv.AppendInt(buf, int64(nRows), 10)
	buf = append(buf, ", "...)
	buf = strconv.AppendInt(buf, int64(nCols), 10)
	buf = append(buf, ")\n"...)
	bw.Write(buf)

	buf = buf[:0]
	for j := 0; j < nCols; j++ {
		begin, end := m.UsedRowRange(j)
		buf = append(buf, " ("...)
		buf = strconv.AppendInt(buf, int64(begin), 10)
		buf = append(buf, ", "...)
		buf = strconv.AppendInt(buf, int64(end), 10)
		buf = append(buf, ')')
	}
	buf = append(buf, '\n')
	bw.Write(buf)

	buf = append(buf[:0], "lg: "...)
	for j := 0; j < nCols; j++ {
		buf = appendValue(buf, m.LogScale(j))
	}
	buf = append(buf, '\n')
	bw.Write(buf)

	buf = append(buf[:0], "lgS: "...)
	cum := 0.0
	for j := 0; j < nCols; j++ {
		cum += m.LogScale(j)
		buf = appendValue(buf, cum)
	}
	buf = append(buf, '\n')
	bw.Write(buf)

	for i := 0; i < nRows; i++ {
		buf = buf[:0]
		for j := 0; j < nCols; j++ {
			col := j
			if reversed {
				col = nCols - 1 - j
			}
			buf = appendValue(buf, math.Log(m.Get(i, col))+m.LogScale(col)+undo(col+offset))
		}
		buf = append(buf, '\n')
		bw.Write(buf)
	}
	// bufio.Writer errors are sticky, so Flush reports any earlier failure.
	return bw.Flush()
}

// appendValue appends a tab and v formatted as %.3f.
func appendValue(buf []byte, v float64) []byte {
	buf = append(buf, '\t')
	switch {
	case math.IsInf(v, 1):
		return append(buf, "inf"...)
	case math.IsInf(v, -1):
		return append(buf, "-inf"...)
	case math.IsNaN(v):
		return append(buf, "nan"...)
	}
	return strconv.AppendFloat(buf, v, 'f', 3, 64)
}
