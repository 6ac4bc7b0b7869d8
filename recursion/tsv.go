// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package recursion

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/tsv"
)

// matrixCell is one row of a matrix dump. Columns are "col row value
// logscale"; value is in linear space, already divided by the column scale.
type matrixCell struct {
	Col      int
	Row      int
	Value    float64
	LogScale float64
}

// ReadMatrixTSV loads a ScaledMatrix from a dump with one cell per line.
// The first line is a header and lines starting with '#' are ignored. The
// file may be compressed; the format is detected from the path.
//
// The matrix has max(row)+1 rows and max(col)+1 columns. A column's used
// row range spans its smallest to largest listed row; unlisted cells inside
// the range are zero. All cells of a column must carry the same log scale.
func ReadMatrixTSV(ctx context.Context, path string) (m *ScaledMatrix, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "open matrix", path)
	}
	defer file.CloseAndReport(ctx, in, &err)
	var r io.Reader = in.Reader(ctx)
	if u := compress.NewReaderPath(r, in.Name()); u != nil {
		defer u.Close()
		r = u
	}
	return readMatrix(r, path)
}

func readMatrix(in io.Reader, name string) (*ScaledMatrix, error) {
	type column struct {
		cells    map[int]float64
		logScale float64
	}
	var (
		cols  = map[int]*column{}
		nRows int
		nCols int
		cell  matrixCell
		nRec  int
	)
	r := tsv.NewReader(bufio.NewReader(in))
	r.HasHeaderRow = true
	r.Comment = '#'
	for {
		if err := r.Read(&cell); err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.E(err, fmt.Sprintf("%s: read matrix", name))
		}
		nRec++
		if cell.Row < 0 || cell.Col < 0 {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("%s: record %d: negative coordinate (%d, %d)", name, nRec, cell.Row, cell.Col))
		}
		c := cols[cell.Col]
		if c == nil {
			c = &column{cells: map[int]float64{}, logScale: cell.LogScale}
			cols[cell.Col] = c
		} else if c.logScale != cell.LogScale {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("%s: record %d: column %d has log scales %v and %v",
				name, nRec, cell.Col, c.logScale, cell.LogScale))
		}
		c.cells[cell.Row] = cell.Value
		if cell.Row >= nRows {
			nRows = cell.Row + 1
		}
		if cell.Col >= nCols {
			nCols = cell.Col + 1
		}
	}
	m := NewScaledMatrix(nRows, nCols)
	for j, c := range cols {
		rows := make([]int, 0, len(c.cells))
		for i := range c.cells {
			rows = append(rows, i)
		}
		sort.Ints(rows)
		begin := rows[0]
		vals := make([]float64, rows[len(rows)-1]-begin+1)
		for _, i := range rows {
			vals[i-begin] = c.cells[i]
		}
		m.setColumn(j, begin, vals, c.logScale)
	}
	return m, nil
}

// WriteMatrixTSV dumps the used cells of m in the format read by
// ReadMatrixTSV.
func WriteMatrixTSV(out io.Writer, m Matrix) error {
	w := tsv.NewWriter(out)
	w.WriteString("col\trow\tvalue\tlogscale")
	if err := w.EndLine(); err != nil {
		return err
	}
	for j := 0; j < m.Columns(); j++ {
		begin, end := m.UsedRowRange(j)
		logScale := strconv.FormatFloat(m.LogScale(j), 'g', -1, 64)
		for i := begin; i < end; i++ {
			w.WriteInt64(int64(j))
			w.WriteInt64(int64(i))
			w.WriteString(strconv.FormatFloat(m.Get(i, j), 'g', -1, 64))
			w.WriteString(logScale)
			if err := w.EndLine(); err != nil {
				return err
			}
		}
	}
	return w.Flush()
}
