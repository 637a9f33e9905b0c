// parser.go
//
// A project and AGS field data service for geotechnical site investigations
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of agsdb.
// agsdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// agsdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with agsdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package ags

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Row descriptors, the first field of every AGS4 line
const (
	DescriptorGroup   = "GROUP"
	DescriptorHeading = "HEADING"
	DescriptorUnit    = "UNIT"
	DescriptorType    = "TYPE"
	DescriptorData    = "DATA"
)

// ParseError reports a malformed line
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ags: line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var (
	ErrNoGroup         = errors.New("row outside of a GROUP")
	ErrNoHeading       = errors.New("row before HEADING")
	ErrWidth           = errors.New("row width does not match HEADING")
	ErrDuplicateGroup  = errors.New("duplicate GROUP")
	ErrDuplicateColumn = errors.New("duplicate heading")
	ErrDescriptor      = errors.New("unknown row descriptor")
	ErrEmpty           = errors.New("no groups found")
)

// Parse reads an AGS4 file. Fields are comma separated and double quoted;
// blank lines between groups are ignored.
func Parse(r io.Reader) (RawData, error) {
	br := bufio.NewReader(r)
	if bom, err := br.Peek(3); err == nil && bytes.Equal(bom, utf8BOM) {
		_, _ = br.Discard(3)
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	p := &parser{raw: RawData{}}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ags: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if err := p.row(record); err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
	}

	if len(p.raw) == 0 {
		return nil, fmt.Errorf("ags: %w", ErrEmpty)
	}
	return p.raw, nil
}

type parser struct {
	raw   RawData
	group *Group
}

func (p *parser) row(record []string) error {
	descriptor := strings.TrimSpace(record[0])
	fields := record[1:]

	if descriptor == "" && len(fields) == 0 {
		return nil
	}

	switch descriptor {
	case DescriptorGroup:
		return p.startGroup(fields)
	case DescriptorHeading, DescriptorUnit, DescriptorType, DescriptorData:
	default:
		return fmt.Errorf("%w %q", ErrDescriptor, descriptor)
	}

	if p.group == nil {
		return fmt.Errorf("%s %w", descriptor, ErrNoGroup)
	}
	if descriptor == DescriptorHeading {
		return p.headings(fields)
	}
	if len(p.group.Order) == 0 {
		return fmt.Errorf("%s %w", descriptor, ErrNoHeading)
	}
	if len(fields) != len(p.group.Order) {
		return fmt.Errorf("%s in %s: %w (%d != %d)", descriptor, p.group.Name, ErrWidth, len(fields), len(p.group.Order))
	}

	switch descriptor {
	case DescriptorUnit:
		for i, name := range p.group.Order {
			p.group.Columns[name].Heading.Unit = fields[i]
		}
	case DescriptorType:
		for i, name := range p.group.Order {
			t, err := ParseType(strings.TrimSpace(fields[i]))
			if err != nil {
				return fmt.Errorf("%s.%s: %w", p.group.Name, name, err)
			}
			p.group.Columns[name].Heading.Type = t
		}
	case DescriptorData:
		for i, name := range p.group.Order {
			col := p.group.Columns[name]
			col.Data = append(col.Data, fields[i])
		}
	}
	return nil
}

func (p *parser) startGroup(fields []string) error {
	if len(fields) == 0 || strings.TrimSpace(fields[0]) == "" {
		return fmt.Errorf("GROUP without a name")
	}
	name := strings.TrimSpace(fields[0])
	if _, ok := p.raw[name]; ok {
		return fmt.Errorf("%w %s", ErrDuplicateGroup, name)
	}

	p.group = &Group{
		Name:    name,
		Columns: make(map[string]*Column),
		Index:   len(p.raw),
	}
	p.raw[name] = p.group
	return nil
}

func (p *parser) headings(fields []string) error {
	if len(p.group.Order) > 0 {
		return fmt.Errorf("second HEADING in %s", p.group.Name)
	}
	for _, field := range fields {
		name := strings.TrimSpace(field)
		if _, ok := p.group.Columns[name]; ok {
			return fmt.Errorf("%w %s.%s", ErrDuplicateColumn, p.group.Name, name)
		}
		p.group.Columns[name] = &Column{Heading: Heading{Name: name}, Data: []string{}}
		p.group.Order = append(p.group.Order, name)
	}
	return nil
}
