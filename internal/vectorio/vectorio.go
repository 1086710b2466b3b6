/*
Copyright (C) 2013-2014 Regents of the University of Minnesota.
This file is part of InMAP.

InMAP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InMAP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package vectorio implements the vector I/O boundary collaborator
// (spec §6): ESRI Shapefile + DBF reading and writing for Point and
// PolyLine geometry, the two types the stream- and road-network
// collaborators in internal/depression need. It wraps
// github.com/jonas-p/go-shp directly, the same library used elsewhere
// for shapefile output.
package vectorio

import (
	goshp "github.com/jonas-p/go-shp"

	"github.com/terrakit/wbtcore/internal/wberr"
)

// GeometryType distinguishes the two shapefile geometry kinds these
// tools read and write. Multi-part variants share the same PolyLine
// handling, indexed per part (spec §6 "Multi* share the same handling
// with per-part indexing").
type GeometryType int

const (
	GeometryPoint GeometryType = iota
	GeometryPolyLine
)

// Feature is one shapefile record: its geometry and its DBF
// attributes keyed by field name.
type Feature struct {
	Type       GeometryType
	Point      [2]float64     // valid when Type == GeometryPoint
	Parts      [][][2]float64 // valid when Type == GeometryPolyLine; one []{x,y} per part
	Attributes map[string]string
}

// FieldSpec describes one DBF attribute column to create when writing.
type FieldSpec struct {
	Name      string
	Length    uint8
	Precision uint8 // 0 for string fields
	IsFloat   bool
}

// Read loads every feature and its attributes from a .shp/.dbf pair.
func Read(path string) ([]Feature, error) {
	reader, err := goshp.Open(path)
	if err != nil {
		return nil, wberr.Wrap(wberr.IoError, "vectorio", err)
	}
	defer reader.Close()

	fields := reader.Fields()
	var out []Feature
	for reader.Next() {
		n, shape := reader.Shape()
		f := Feature{Attributes: map[string]string{}}
		switch s := shape.(type) {
		case *goshp.Point:
			f.Type = GeometryPoint
			f.Point = [2]float64{s.X, s.Y}
		case *goshp.PolyLine:
			f.Type = GeometryPolyLine
			f.Parts = polyLineParts(s)
		default:
			return nil, wberr.New(wberr.IoError, "vectorio", "unsupported shapefile geometry type")
		}
		for i, field := range fields {
			f.Attributes[fieldName(field)] = reader.ReadAttribute(n, i)
		}
		out = append(out, f)
	}
	if err := reader.Err(); err != nil {
		return nil, wberr.Wrap(wberr.IoError, "vectorio", err)
	}
	return out, nil
}

func polyLineParts(s *goshp.PolyLine) [][][2]float64 {
	parts := make([][][2]float64, len(s.Parts))
	for i := range s.Parts {
		start := int(s.Parts[i])
		end := int(s.NumPoints)
		if i+1 < len(s.Parts) {
			end = int(s.Parts[i+1])
		}
		pts := make([][2]float64, 0, end-start)
		for _, p := range s.Points[start:end] {
			pts = append(pts, [2]float64{p.X, p.Y})
		}
		parts[i] = pts
	}
	return parts
}

func fieldName(f goshp.Field) string {
	n := 0
	for n < len(f.Name) && f.Name[n] != 0 {
		n++
	}
	return string(f.Name[:n])
}

// Write saves features to path (without its extension) as a
// .shp/.shx/.dbf triple, with one DBF column per entry in fields. The
// shapefile's geometry type is geomType; each feature's geometry is
// written according to its own Type, which is not checked against
// geomType.
func Write(path string, geomType GeometryType, fields []FieldSpec, features []Feature) error {
	shpType := goshp.POINT
	if geomType == GeometryPolyLine {
		shpType = goshp.POLYLINE
	}
	writer, err := goshp.Create(path, shpType)
	if err != nil {
		return wberr.Wrap(wberr.IoError, "vectorio", err)
	}
	defer writer.Close()

	shpFields := make([]goshp.Field, len(fields))
	for i, f := range fields {
		if f.IsFloat {
			shpFields[i] = goshp.FloatField(f.Name, f.Length, f.Precision)
		} else {
			shpFields[i] = goshp.StringField(f.Name, f.Length)
		}
	}
	writer.SetFields(shpFields)

	for _, feat := range features {
		var n int32
		var werr error
		switch feat.Type {
		case GeometryPoint:
			n, werr = writer.Write(&goshp.Point{X: feat.Point[0], Y: feat.Point[1]})
		case GeometryPolyLine:
			n, werr = writer.Write(buildPolyLine(feat.Parts))
		default:
			werr = wberr.New(wberr.InvalidParam, "vectorio", "unknown geometry type")
		}
		if werr != nil {
			return wberr.Wrap(wberr.IoError, "vectorio", werr)
		}
		for i, f := range fields {
			writer.WriteAttribute(int(n), i, feat.Attributes[f.Name])
		}
	}
	return nil
}

func buildPolyLine(parts [][][2]float64) *goshp.PolyLine {
	var points []goshp.Point
	partOffsets := make([]int32, len(parts))
	for i, part := range parts {
		partOffsets[i] = int32(len(points))
		for _, p := range part {
			points = append(points, goshp.Point{X: p[0], Y: p[1]})
		}
	}
	box := goshp.Box{}
	if len(points) > 0 {
		box.MinX, box.MaxX = points[0].X, points[0].X
		box.MinY, box.MaxY = points[0].Y, points[0].Y
		for _, p := range points {
			if p.X < box.MinX {
				box.MinX = p.X
			}
			if p.X > box.MaxX {
				box.MaxX = p.X
			}
			if p.Y < box.MinY {
				box.MinY = p.Y
			}
			if p.Y > box.MaxY {
				box.MaxY = p.Y
			}
		}
	}
	return &goshp.PolyLine{
		Box:       box,
		NumParts:  int32(len(parts)),
		NumPoints: int32(len(points)),
		Parts:     partOffsets,
		Points:    points,
	}
}
