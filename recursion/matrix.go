// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package recursion

import (
	"math"

	"github.com/grailbio/base/log"
)

// Matrix is a read-only view of a scaled recursion matrix. Rows and columns
// are zero-based. Each column holds meaningful values only in its used row
// range.
type Matrix interface {
	Rows() int
	Columns() int
	// UsedRowRange returns the half-open row range [begin, end) holding
	// values for col.
	UsedRowRange(col int) (begin, end int)
	// LogScale returns the natural log of the factor col was divided by.
	LogScale(col int) float64
	// Get returns the linear-space value at (row, col).
	Get(row, col int) float64
}

type scaledColumn struct {
	begin, end int
	vals       []float64
	logScale   float64
}

// ScaledMatrix is a column-banded Matrix. Each column stores only its used
// row range. Columns are filled one at a time:
//
//	m.StartEditingColumn(j, begin, end)
//	for i := begin; i < end; i++ {
//	  m.Set(i, j, v)
//	}
//	m.FinishEditingColumn(j)
//
// FinishEditingColumn divides the column by its largest value and records
// the log of that value as the column's scale.
//
// ScaledMatrix is not thread safe.
type ScaledMatrix struct {
	rows    int
	cols    []scaledColumn
	editing int
}

// NewScaledMatrix creates an empty rows x cols matrix. All columns start
// with an empty used row range and zero log scale.
func NewScaledMatrix(rows, cols int) *ScaledMatrix {
	if rows < 0 || cols < 0 {
		log.Panicf("NewScaledMatrix: invalid shape %dx%d", rows, cols)
	}
	return &ScaledMatrix{rows: rows, cols: make([]scaledColumn, cols), editing: -1}
}

// Rows implements Matrix.
func (m *ScaledMatrix) Rows() int { return m.rows }

// Columns implements Matrix.
func (m *ScaledMatrix) Columns() int { return len(m.cols) }

// UsedRowRange implements Matrix.
func (m *ScaledMatrix) UsedRowRange(col int) (begin, end int) {
	c := &m.cols[col]
	return c.begin, c.end
}

// LogScale implements Matrix.
func (m *ScaledMatrix) LogScale(col int) float64 { return m.cols[col].logScale }

// Get implements Matrix. It returns 0 for rows outside the column's used
// range.
func (m *ScaledMatrix) Get(row, col int) float64 {
	c := &m.cols[col]
	if row < c.begin || row >= c.end {
		return 0
	}
	return c.vals[row-c.begin]
}

// StartEditingColumn clears col and sets its used row range to [begin,
// end).
//
// REQUIRES: no other column is being edited. 0 <= begin <= end <= Rows().
func (m *ScaledMatrix) StartEditingColumn(col, begin, end int) {
	if m.editing >= 0 {
		log.Panicf("StartEditingColumn(%d): column %d is still being edited", col, m.editing)
	}
	if begin < 0 || begin > end || end > m.rows {
		log.Panicf("StartEditingColumn(%d): invalid row range [%d, %d) for %d rows", col, begin, end, m.rows)
	}
	c := &m.cols[col]
	c.begin, c.end, c.logScale = begin, end, 0
	if cap(c.vals) >= end-begin {
		c.vals = c.vals[:end-begin]
		for i := range c.vals {
			c.vals[i] = 0
		}
	} else {
		c.vals = make([]float64, end-begin)
	}
	m.editing = col
}

// Set stores a linear-space value.
//
// REQUIRES: col is being edited and row is in its used row range.
func (m *ScaledMatrix) Set(row, col int, v float64) {
	if col != m.editing {
		log.Panicf("Set(%d, %d): column is not being edited", row, col)
	}
	c := &m.cols[col]
	if row < c.begin || row >= c.end {
		log.Panicf("Set(%d, %d): row outside used range [%d, %d)", row, col, c.begin, c.end)
	}
	c.vals[row-c.begin] = v
}

// FinishEditingColumn rescales col so that its largest value is 1 and
// records the log of the divisor. A column with no positive value keeps a
// zero log scale.
func (m *ScaledMatrix) FinishEditingColumn(col int) {
	if col != m.editing {
		log.Panicf("FinishEditingColumn(%d): column is not being edited", col)
	}
	m.editing = -1
	c := &m.cols[col]
	max := 0.0
	for _, v := range c.vals {
		if v > max {
			max = v
		}
	}
	if max <= 0 || math.IsInf(max, 1) {
		return
	}
	for i := range c.vals {
		c.vals[i] /= max
	}
	c.logScale = math.Log(max)
}

// setColumn installs a column as is, without rescaling. Used by loaders that
// read an already scaled matrix.
func (m *ScaledMatrix) setColumn(col, begin int, vals []float64, logScale float64) {
	m.cols[col] = scaledColumn{begin: begin, end: begin + len(vals), vals: vals, logScale: logScale}
}

// LogProb returns the log-domain value of (row, col) with the column scale
// added back. It does not apply any recursion-specific bias.
func LogProb(m Matrix, row, col int) float64 {
	return math.Log(m.Get(row, col)) + m.LogScale(col)
}
