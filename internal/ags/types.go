// Package ags reads AGS4 geotechnical data exchange files into a generic
// group/column container.
package ags

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// HeadingType is an AGS data type code from the TYPE row
type HeadingType string

const (
	TypeID             HeadingType = "ID"
	TypePA             HeadingType = "PA"
	TypePT             HeadingType = "PT"
	TypePU             HeadingType = "PU"
	TypeText           HeadingType = "X"
	TypeTextNum        HeadingType = "XN"
	TypeTime           HeadingType = "T"
	TypeDateTime       HeadingType = "DT"
	TypeMoisture       HeadingType = "MC"
	TypeUnit           HeadingType = "U"
	TypeDegMinSec      HeadingType = "DMS"
	TypeYesNo          HeadingType = "YN"
	TypeRecordLink     HeadingType = "RL"
	TypeRecordLinkLong HeadingType = "RECORD LINK"
)

// ParseType validates an AGS type code. Besides the fixed codes, numeric
// formats nDP (n >= 0), nSF and nSCI (n >= 1) are accepted.
func ParseType(s string) (HeadingType, error) {
	switch t := HeadingType(s); t {
	case TypeID, TypePA, TypePT, TypePU, TypeText, TypeTextNum, TypeTime, TypeDateTime,
		TypeMoisture, TypeUnit, TypeDegMinSec, TypeYesNo, TypeRecordLink, TypeRecordLinkLong:
		return t, nil
	}

	for _, suffix := range []string{"DP", "SF", "SCI"} {
		digits, ok := strings.CutSuffix(s, suffix)
		if !ok || digits == "" {
			continue
		}
		n, err := strconv.Atoi(digits)
		if err != nil || n < 0 {
			continue
		}
		if n > 0 || suffix == "DP" {
			return HeadingType(s), nil
		}
	}

	return "", fmt.Errorf("unknown AGS type %q", s)
}

// Heading is the metadata of one column
type Heading struct {
	Name string      `json:"name"`
	Type HeadingType `json:"type"`
	Unit string      `json:"unit"`
}

// Column is a heading plus its values, one per DATA row
type Column struct {
	Heading Heading  `json:"heading"`
	Data    []string `json:"data"`
}

// Group is one AGS group (table) such as PROJ, LOCA or GEOL
type Group struct {
	Name    string             `json:"name"`
	Columns map[string]*Column `json:"columns"`

	// Order is the heading order as it appeared in the file
	Order []string `json:"-"`
	// Index is the position of the group in the file
	Index int `json:"-"`
}

// RawData maps group names to groups
type RawData map[string]*Group

// Len returns the number of DATA rows in the group
func (g *Group) Len() int {
	if len(g.Order) == 0 {
		return 0
	}
	return len(g.Columns[g.Order[0]].Data)
}

// Headings returns the column metadata in file order
func (g *Group) Headings() []Heading {
	headings := make([]Heading, 0, len(g.Order))
	for _, name := range g.Order {
		headings = append(headings, g.Columns[name].Heading)
	}
	return headings
}

// Rows returns the data as rows in heading order
func (g *Group) Rows() [][]string {
	n := g.Len()
	rows := make([][]string, n)
	for i := 0; i < n; i++ {
		row := make([]string, len(g.Order))
		for j, name := range g.Order {
			row[j] = g.Columns[name].Data[i]
		}
		rows[i] = row
	}
	return rows
}

// Value returns the value of column name in row i, or "" if the group has no such column
func (g *Group) Value(name string, i int) string {
	col, ok := g.Columns[name]
	if !ok || i < 0 || i >= len(col.Data) {
		return ""
	}
	return col.Data[i]
}

// Has reports whether the group carries the named heading
func (g *Group) Has(name string) bool {
	_, ok := g.Columns[name]
	return ok
}

// GroupNames returns the group names in file order
func (r RawData) GroupNames() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return r[names[i]].Index < r[names[j]].Index
	})
	return names
}
