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

package main

import (
	"github.com/spf13/pflag"

	"github.com/terrakit/wbtcore/internal/lasio"
	"github.com/terrakit/wbtcore/internal/lidar"
	"github.com/terrakit/wbtcore/internal/wberr"
)

func init() {
	register(Tool{
		Name:  "LidarSegmentation",
		Usage: "--input=<las> --output=<las> [--k=20] [--max_normal_angle=10] [--max_z_diff=0.15] [--min_segment_size=10]",
		Run:   runLidarSegmentation,
	})
	register(Tool{
		Name:  "ClassifyLidar",
		Usage: "--input=<las> --output=<las> [--k=20] [--max_normal_angle=10] [--max_z_diff=0.15] [--min_segment_size=10] [--ground_class=2] [--offterr_class=1]",
		Run:   runClassifyLidar,
	})
	register(Tool{
		Name:  "LidarPointStats",
		Usage: "--input=<las> --output=<raster> --cell_size=<float> [--stat=count|intensity_mean|predominant_class]",
		Run:   runLidarPointStats,
	})
	register(Tool{
		Name:  "FilterLidarScanAngles",
		Usage: "--input=<las> --output=<las> --max_scan_angle=<int>",
		Run:   runFilterLidarScanAngles,
	})
}

func segmentOptsFlags(fs *pflag.FlagSet) (*int, *float64, *float64, *int) {
	k := fs.Int("k", 20, "neighbors used for plane fitting")
	maxNormalAngle := fs.Float64("max_normal_angle", 10, "region-growing admission threshold, degrees")
	maxZDiff := fs.Float64("max_z_diff", 0.15, "region-growing admission threshold, map units")
	minSegmentSize := fs.Int("min_segment_size", 10, "segments smaller than this are mopped up")
	return k, maxNormalAngle, maxZDiff, minSegmentSize
}

func runLidarSegmentation(wd string, args []string, verbose bool) error {
	fs := pflag.NewFlagSet("LidarSegmentation", pflag.ContinueOnError)
	input := fs.String("input", "", "input LAS point cloud")
	output := fs.String("output", "", "output LAS, classification overwritten with segment id mod 256")
	k, maxNormalAngle, maxZDiff, minSegmentSize := segmentOptsFlags(fs)
	if err := fs.Parse(args); err != nil {
		return wberr.Wrap(wberr.InvalidParam, "LidarSegmentation", err)
	}
	pc, header, err := lasio.Read(resolvePath(wd, *input))
	if err != nil {
		return wberr.Wrap(wberr.IoError, "LidarSegmentation", err)
	}
	res, err := lidar.Run(pc, lidar.Options{
		K:              *k,
		MaxNormalAngle: *maxNormalAngle,
		MaxZDiff:       *maxZDiff,
		MinSegmentSize: *minSegmentSize,
	})
	if err != nil {
		return err
	}
	out := withClassification(pc, func(i int) uint8 { return uint8(res.SegmentID[i] % 256) })
	return writeLAS(resolvePath(wd, *output), out, header)
}

func runClassifyLidar(wd string, args []string, verbose bool) error {
	fs := pflag.NewFlagSet("ClassifyLidar", pflag.ContinueOnError)
	input := fs.String("input", "", "input LAS point cloud")
	output := fs.String("output", "", "output LAS with ground/off-terrain classification")
	k, maxNormalAngle, maxZDiff, minSegmentSize := segmentOptsFlags(fs)
	groundClass := fs.Int("ground_class", 2, "classification code for ground points")
	offTerrClass := fs.Int("offterr_class", 1, "classification code for off-terrain points")
	if err := fs.Parse(args); err != nil {
		return wberr.Wrap(wberr.InvalidParam, "ClassifyLidar", err)
	}
	pc, header, err := lasio.Read(resolvePath(wd, *input))
	if err != nil {
		return wberr.Wrap(wberr.IoError, "ClassifyLidar", err)
	}
	res, err := lidar.Classify(pc, lidar.ClassifyOptions{
		Segmentation: lidar.Options{
			K:              *k,
			MaxNormalAngle: *maxNormalAngle,
			MaxZDiff:       *maxZDiff,
			MinSegmentSize: *minSegmentSize,
		},
		GroundClass:  uint8(*groundClass),
		OffTerrClass: uint8(*offTerrClass),
	})
	if err != nil {
		return err
	}
	out := withClassification(pc, func(i int) uint8 {
		if res.IsGround[i] {
			return uint8(*groundClass)
		}
		return uint8(*offTerrClass)
	})
	return writeLAS(resolvePath(wd, *output), out, header)
}

func runLidarPointStats(wd string, args []string, verbose bool) error {
	fs := pflag.NewFlagSet("LidarPointStats", pflag.ContinueOnError)
	input := fs.String("input", "", "input LAS point cloud")
	output := fs.String("output", "", "output raster")
	cellSize := fs.Float64("cell_size", 1.0, "output raster cell size, map units")
	stat := fs.String("stat", "count", "count|intensity_mean|predominant_class")
	if err := fs.Parse(args); err != nil {
		return wberr.Wrap(wberr.InvalidParam, "LidarPointStats", err)
	}
	pc, _, err := lasio.Read(resolvePath(wd, *input))
	if err != nil {
		return wberr.Wrap(wberr.IoError, "LidarPointStats", err)
	}
	out, err := lidar.PointStats(pc, *cellSize, parseStatKind(*stat))
	if err != nil {
		return err
	}
	return writeRaster(resolvePath(wd, *output), out)
}

func runFilterLidarScanAngles(wd string, args []string, verbose bool) error {
	fs := pflag.NewFlagSet("FilterLidarScanAngles", pflag.ContinueOnError)
	input := fs.String("input", "", "input LAS point cloud")
	output := fs.String("output", "", "output LAS with wide-angle returns removed")
	maxScanAngle := fs.Int("max_scan_angle", 10, "returns with |scan_angle| above this are dropped")
	if err := fs.Parse(args); err != nil {
		return wberr.Wrap(wberr.InvalidParam, "FilterLidarScanAngles", err)
	}
	pc, header, err := lasio.Read(resolvePath(wd, *input))
	if err != nil {
		return wberr.Wrap(wberr.IoError, "FilterLidarScanAngles", err)
	}
	out := lidar.FilterByScanAngle(pc, int8(*maxScanAngle))
	return writeLAS(resolvePath(wd, *output), out, header)
}

func parseStatKind(s string) lidar.StatKind {
	switch s {
	case "intensity_mean":
		return lidar.StatIntensityMean
	case "predominant_class":
		return lidar.StatPredominantClass
	default:
		return lidar.StatCount
	}
}

// withClassification returns a copy of pc with each point's
// Classification replaced by assign(index), leaving every other field
// untouched.
func withClassification(pc *lidar.PointCloud, assign func(i int) uint8) *lidar.PointCloud {
	pts := make([]lidar.Point, pc.Len())
	copy(pts, pc.Points)
	for i := range pts {
		pts[i].Classification = assign(i)
	}
	return lidar.NewPointCloud(pts)
}

func writeLAS(path string, pc *lidar.PointCloud, header *lasio.Header) error {
	if err := lasio.Write(path, pc, header); err != nil {
		return wberr.Wrap(wberr.IoError, "lasio", err)
	}
	return nil
}
