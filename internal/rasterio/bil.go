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

package rasterio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/terrakit/wbtcore/internal/grid"
	"github.com/terrakit/wbtcore/internal/wberr"
)

// ESRI BIL: an all-uppercase-key ASCII .hdr sidecar plus a raw,
// row-major binary .bil body, 32-bit little-endian floats, one band.
func hdrPath(bilPath string) string {
	return strings.TrimSuffix(bilPath, ".bil") + ".hdr"
}

func readBIL(path string) (*grid.GridStore, error) {
	hf, err := os.Open(hdrPath(path))
	if err != nil {
		return nil, wberr.Wrap(wberr.IoError, "rasterio.bil", err)
	}
	defer hf.Close()

	header := map[string]string{}
	scanner := bufio.NewScanner(hf)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 {
			continue
		}
		header[strings.ToUpper(fields[0])] = fields[1]
	}

	rows, err := bilInt(header, "NROWS")
	if err != nil {
		return nil, err
	}
	cols, err := bilInt(header, "NCOLS")
	if err != nil {
		return nil, err
	}
	ulx, err := bilFloat(header, "ULXMAP")
	if err != nil {
		return nil, err
	}
	uly, err := bilFloat(header, "ULYMAP")
	if err != nil {
		return nil, err
	}
	xdim, err := bilFloat(header, "XDIM")
	if err != nil {
		return nil, err
	}
	ydim, err := bilFloat(header, "YDIM")
	if err != nil {
		return nil, err
	}
	nodata := -32768.0
	if v, ok := header["NODATA"]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			nodata = f
		}
	}

	west := ulx - xdim/2
	north := uly + ydim/2
	south := north - float64(rows)*ydim
	east := west + float64(cols)*xdim

	g := grid.New(rows, cols, north, south, east, west, nodata)
	g.ResolutionX = xdim
	g.ResolutionY = ydim

	bf, err := os.Open(path)
	if err != nil {
		return nil, wberr.Wrap(wberr.IoError, "rasterio.bil", err)
	}
	defer bf.Close()

	buf := make([]byte, 4)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if _, err := readFull(bf, buf); err != nil {
				return nil, wberr.Wrap(wberr.IoError, "rasterio.bil", err)
			}
			bits := binary.LittleEndian.Uint32(buf)
			g.Set(r, c, float64(math.Float32frombits(bits)))
		}
	}
	return g, nil
}

func writeBIL(path string, g *grid.GridStore) error {
	if g == nil {
		return wberr.New(wberr.InvalidParam, "rasterio.bil", "grid is nil")
	}
	hf, err := os.Create(hdrPath(path))
	if err != nil {
		return wberr.Wrap(wberr.IoError, "rasterio.bil", err)
	}
	defer hf.Close()

	fmt.Fprintf(hf, "NROWS %d\n", g.Rows)
	fmt.Fprintf(hf, "NCOLS %d\n", g.Columns)
	fmt.Fprintf(hf, "NBITS 32\n")
	fmt.Fprintf(hf, "BYTEORDER I\n")
	fmt.Fprintf(hf, "LAYOUT BIL\n")
	fmt.Fprintf(hf, "ULXMAP %v\n", g.West+g.ResolutionX/2)
	fmt.Fprintf(hf, "ULYMAP %v\n", g.North-g.ResolutionY/2)
	fmt.Fprintf(hf, "XDIM %v\n", g.ResolutionX)
	fmt.Fprintf(hf, "YDIM %v\n", g.ResolutionY)
	fmt.Fprintf(hf, "NODATA %v\n", g.NoData)
	fmt.Fprintf(hf, "PIXELTYPE FLOAT\n")

	bf, err := os.Create(path)
	if err != nil {
		return wberr.Wrap(wberr.IoError, "rasterio.bil", err)
	}
	defer bf.Close()
	w := bufio.NewWriter(bf)
	buf := make([]byte, 4)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Columns; c++ {
			binary.LittleEndian.PutUint32(buf, math.Float32bits(float32(g.Get(r, c))))
			if _, err := w.Write(buf); err != nil {
				return wberr.Wrap(wberr.IoError, "rasterio.bil", err)
			}
		}
	}
	return w.Flush()
}

func bilInt(header map[string]string, key string) (int, error) {
	v, ok := header[key]
	if !ok {
		return 0, wberr.New(wberr.IoError, "rasterio.bil", "missing header field: "+key)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, wberr.Wrap(wberr.IoError, "rasterio.bil", err)
	}
	return n, nil
}

func bilFloat(header map[string]string, key string) (float64, error) {
	v, ok := header[key]
	if !ok {
		return 0, wberr.New(wberr.IoError, "rasterio.bil", "missing header field: "+key)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, wberr.Wrap(wberr.IoError, "rasterio.bil", err)
	}
	return f, nil
}
