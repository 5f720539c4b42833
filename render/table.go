// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"codello.dev/asn1view/ber"
)

// tableHeader holds the column names of the table format.
var tableHeader = []string{"Offset", "Depth", "HL", "L", "Class", "Tag", "Value"}

// Rows returns the cells of the table format of n, one row per node.
func (p *Printer) Rows(n *ber.Node) [][]string {
	tagNames := p.tagNames()
	var rows [][]string
	for depth, c := range n.All() {
		kind := "prim"
		if c.Header.Constructed {
			kind = "cons"
		}
		rows = append(rows, []string{
			strconv.Itoa(c.Offset),
			strconv.Itoa(depth),
			strconv.Itoa(c.HeaderLen),
			strconv.Itoa(c.Header.Length),
			kind + " " + c.Tag().Class.Abbrev(),
			tagName(tagNames, c.Tag()),
			p.FormatValue(c.Value),
		})
	}
	return rows
}

// FprintTable writes the table format of the given trees to w.
func (p *Printer) FprintTable(w io.Writer, ns ...*ber.Node) error {
	cw := &errWriter{w: w}
	table := tablewriter.NewWriter(cw)
	table.SetHeader(tableHeader)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, n := range ns {
		table.AppendBulk(p.Rows(n))
	}
	table.Render()
	return cw.err
}

// errWriter records the first error of w. The table writer does not
// report write errors itself.
type errWriter struct {
	w   io.Writer
	err error
}

func (cw *errWriter) Write(p []byte) (int, error) {
	if cw.err != nil {
		return 0, cw.err
	}
	n, err := cw.w.Write(p)
	cw.err = err
	return n, err
}
