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

// Package lasio implements the LAS point-cloud I/O boundary
// collaborator (spec §6): a byte-level reader/writer for LAS 1.0-1.4
// point-record formats 0-3, so LidarSegmentation and its sibling
// tools see only lidar.PointCloud.
package lasio

import (
	"encoding/binary"
	"math"
	"os"

	"github.com/terrakit/wbtcore/internal/lidar"
	"github.com/terrakit/wbtcore/internal/wberr"
)

const legacyHeaderSize = 227

// Header carries the round-tripped identity fields spec §6 calls out
// by name, plus the raw VLR bytes, scale/offset, and point format
// needed to write a file back out unchanged except where the caller
// explicitly overrides a field.
type Header struct {
	VersionMajor, VersionMinor uint8
	SystemIdentifier           [32]byte
	GeneratingSoftware         [32]byte
	FileCreationDay            uint16
	FileCreationYear           uint16
	PointFormat                uint8
	XScale, YScale, ZScale     float64
	XOffset, YOffset, ZOffset  float64
	VLRs                       []byte
	NumVLRs                    uint32
}

// Read parses a LAS file into a PointCloud and the header fields
// needed to write it back out.
func Read(path string) (*lidar.PointCloud, *Header, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, wberr.Wrap(wberr.IoError, "lasio", err)
	}
	if len(data) < legacyHeaderSize || string(data[0:4]) != "LASF" {
		return nil, nil, wberr.New(wberr.IoError, "lasio", "missing LASF signature")
	}

	h := &Header{}
	h.VersionMajor = data[24]
	h.VersionMinor = data[25]
	copy(h.SystemIdentifier[:], data[26:58])
	copy(h.GeneratingSoftware[:], data[58:90])
	h.FileCreationDay = binary.LittleEndian.Uint16(data[90:92])
	h.FileCreationYear = binary.LittleEndian.Uint16(data[92:94])
	headerSize := binary.LittleEndian.Uint16(data[94:96])
	offsetToPoints := binary.LittleEndian.Uint32(data[96:100])
	numVLRs := binary.LittleEndian.Uint32(data[100:104])
	h.NumVLRs = numVLRs
	h.PointFormat = data[104] &^ 0x80 // top bit marks LAS 1.4 extended formats, irrelevant to 0-3
	pointLen := int(binary.LittleEndian.Uint16(data[105:107]))
	numPoints := int(binary.LittleEndian.Uint32(data[107:111]))

	h.XScale = math.Float64frombits(binary.LittleEndian.Uint64(data[131:139]))
	h.YScale = math.Float64frombits(binary.LittleEndian.Uint64(data[139:147]))
	h.ZScale = math.Float64frombits(binary.LittleEndian.Uint64(data[147:155]))
	h.XOffset = math.Float64frombits(binary.LittleEndian.Uint64(data[155:163]))
	h.YOffset = math.Float64frombits(binary.LittleEndian.Uint64(data[163:171]))
	h.ZOffset = math.Float64frombits(binary.LittleEndian.Uint64(data[171:179]))

	if int(headerSize) > len(data) || int(offsetToPoints) > len(data) {
		return nil, nil, wberr.New(wberr.IoError, "lasio", "truncated header")
	}
	h.VLRs = append([]byte(nil), data[headerSize:offsetToPoints]...)

	if h.PointFormat > 3 {
		return nil, nil, wberr.New(wberr.InvalidParam, "lasio", "only point formats 0-3 are supported")
	}
	hasGPS := h.PointFormat == 1 || h.PointFormat == 3
	hasColor := h.PointFormat == 2 || h.PointFormat == 3

	pts := make([]lidar.Point, 0, numPoints)
	for i := 0; i < numPoints; i++ {
		rec := data[int(offsetToPoints)+i*pointLen:]
		if len(rec) < pointLen {
			return nil, nil, wberr.New(wberr.IoError, "lasio", "truncated point record")
		}
		xRaw := int32(binary.LittleEndian.Uint32(rec[0:4]))
		yRaw := int32(binary.LittleEndian.Uint32(rec[4:8]))
		zRaw := int32(binary.LittleEndian.Uint32(rec[8:12]))
		intensity := binary.LittleEndian.Uint16(rec[12:14])
		flags := rec[14]
		classification := rec[15]
		scanAngle := int8(rec[16])

		p := lidar.Point{
			X:              float64(xRaw)*h.XScale + h.XOffset,
			Y:              float64(yRaw)*h.YScale + h.YOffset,
			Z:              float64(zRaw)*h.ZScale + h.ZOffset,
			Intensity:      intensity,
			ReturnNumber:   flags & 0x07,
			NumReturns:     (flags >> 3) & 0x07,
			Classification: classification,
			ScanAngle:      scanAngle,
		}

		off := 20
		if hasGPS {
			p.GPSTime = math.Float64frombits(binary.LittleEndian.Uint64(rec[off : off+8]))
			p.HasGPSTime = true
			off += 8
		}
		if hasColor {
			p.R = binary.LittleEndian.Uint16(rec[off : off+2])
			p.G = binary.LittleEndian.Uint16(rec[off+2 : off+4])
			p.B = binary.LittleEndian.Uint16(rec[off+4 : off+6])
			p.HasColor = true
		}
		pts = append(pts, p)
	}

	return lidar.NewPointCloud(pts), h, nil
}

// Write saves pc back out in h's point format, preserving h's VLRs and
// header-tuple fields exactly. A nil h starts from sane LAS 1.2
// defaults (point format 3, millimeter scale, zero offset).
func Write(path string, pc *lidar.PointCloud, h *Header) error {
	if h == nil {
		h = defaultHeader()
	}
	hasGPS := h.PointFormat == 1 || h.PointFormat == 3
	hasColor := h.PointFormat == 2 || h.PointFormat == 3
	pointLen := 20
	if hasGPS {
		pointLen += 8
	}
	if hasColor {
		pointLen += 6
	}

	minX, minY, minZ := math.Inf(1), math.Inf(1), math.Inf(1)
	maxX, maxY, maxZ := math.Inf(-1), math.Inf(-1), math.Inf(-1)
	for _, p := range pc.Points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		minZ, maxZ = math.Min(minZ, p.Z), math.Max(maxZ, p.Z)
	}

	offsetToPoints := legacyHeaderSize + len(h.VLRs)
	buf := make([]byte, offsetToPoints+pointLen*len(pc.Points))

	copy(buf[0:4], "LASF")
	buf[24] = h.VersionMajor
	buf[25] = h.VersionMinor
	copy(buf[26:58], h.SystemIdentifier[:])
	copy(buf[58:90], h.GeneratingSoftware[:])
	binary.LittleEndian.PutUint16(buf[90:92], h.FileCreationDay)
	binary.LittleEndian.PutUint16(buf[92:94], h.FileCreationYear)
	binary.LittleEndian.PutUint16(buf[94:96], legacyHeaderSize)
	binary.LittleEndian.PutUint32(buf[96:100], uint32(offsetToPoints))
	binary.LittleEndian.PutUint32(buf[100:104], h.NumVLRs)
	buf[104] = h.PointFormat
	binary.LittleEndian.PutUint16(buf[105:107], uint16(pointLen))
	binary.LittleEndian.PutUint32(buf[107:111], uint32(len(pc.Points)))

	binary.LittleEndian.PutUint64(buf[131:139], math.Float64bits(h.XScale))
	binary.LittleEndian.PutUint64(buf[139:147], math.Float64bits(h.YScale))
	binary.LittleEndian.PutUint64(buf[147:155], math.Float64bits(h.ZScale))
	binary.LittleEndian.PutUint64(buf[155:163], math.Float64bits(h.XOffset))
	binary.LittleEndian.PutUint64(buf[163:171], math.Float64bits(h.YOffset))
	binary.LittleEndian.PutUint64(buf[171:179], math.Float64bits(h.ZOffset))
	binary.LittleEndian.PutUint64(buf[179:187], math.Float64bits(maxX))
	binary.LittleEndian.PutUint64(buf[187:195], math.Float64bits(minX))
	binary.LittleEndian.PutUint64(buf[195:203], math.Float64bits(maxY))
	binary.LittleEndian.PutUint64(buf[203:211], math.Float64bits(minY))
	binary.LittleEndian.PutUint64(buf[211:219], math.Float64bits(maxZ))
	binary.LittleEndian.PutUint64(buf[219:227], math.Float64bits(minZ))

	copy(buf[legacyHeaderSize:offsetToPoints], h.VLRs)

	for i, p := range pc.Points {
		rec := buf[offsetToPoints+i*pointLen:]
		xRaw := int32(math.Round((p.X - h.XOffset) / h.XScale))
		yRaw := int32(math.Round((p.Y - h.YOffset) / h.YScale))
		zRaw := int32(math.Round((p.Z - h.ZOffset) / h.ZScale))
		binary.LittleEndian.PutUint32(rec[0:4], uint32(xRaw))
		binary.LittleEndian.PutUint32(rec[4:8], uint32(yRaw))
		binary.LittleEndian.PutUint32(rec[8:12], uint32(zRaw))
		binary.LittleEndian.PutUint16(rec[12:14], p.Intensity)
		rec[14] = (p.ReturnNumber & 0x07) | ((p.NumReturns & 0x07) << 3)
		rec[15] = p.Classification
		rec[16] = byte(p.ScanAngle)

		off := 20
		if hasGPS {
			binary.LittleEndian.PutUint64(rec[off:off+8], math.Float64bits(p.GPSTime))
			off += 8
		}
		if hasColor {
			binary.LittleEndian.PutUint16(rec[off:off+2], p.R)
			binary.LittleEndian.PutUint16(rec[off+2:off+4], p.G)
			binary.LittleEndian.PutUint16(rec[off+4:off+6], p.B)
		}
	}

	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return wberr.Wrap(wberr.IoError, "lasio", err)
	}
	return nil
}

func defaultHeader() *Header {
	h := &Header{
		VersionMajor: 1,
		VersionMinor: 2,
		PointFormat:  3,
		XScale:       0.001,
		YScale:       0.001,
		ZScale:       0.001,
	}
	copy(h.SystemIdentifier[:], "OTHER")
	copy(h.GeneratingSoftware[:], "wbtcore")
	return h
}

