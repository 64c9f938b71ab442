// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package raster holds the RGBD pixel grid that the segmentation core
// operates on: a 2-D image of K>=4 channels (R,G,B,depth,aux...), plus
// the boundary file formats used to load and save it.
package raster

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedImage is returned when an image has fewer than 4 channels
// or zero size.
var ErrUnsupportedImage = errors.New("unsupported image: need at least 4 channels and non-zero size")

// Coord is a pixel coordinate within an Image.
type Coord struct {
	X, Y int32
}

// Image is a W x H grid of K-channel pixels, row-major, channel-fastest:
// Data[(y*W+x)*K + c] holds channel c of pixel (x,y).
type Image struct {
	ID       int    // sequential id for log output; 0 for single-image loads, the job index in batch runs
	FileName string // original file name, if any, for log output

	W, H int32
	K    int32 // number of channels, K>=4: 0,1,2=RGB, 3=depth, 4..=aux

	Data []float32
}

// NewImage allocates a zeroed image of the given dimensions.
func NewImage(w, h, k int32) *Image {
	return &Image{W: w, H: h, K: k, Data: make([]float32, int64(w)*int64(h)*int64(k))}
}

// Validate checks the structural invariants the core relies on.
func (img *Image) Validate() error {
	if img == nil || img.K < 4 || img.W <= 0 || img.H <= 0 {
		return ErrUnsupportedImage
	}
	if int64(len(img.Data)) != int64(img.W)*int64(img.H)*int64(img.K) {
		return fmt.Errorf("raster: data length %d does not match %dx%dx%d", len(img.Data), img.W, img.H, img.K)
	}
	return nil
}

// DimensionsToString renders e.g. "640x480x4" for log output.
func (img *Image) DimensionsToString() string {
	return fmt.Sprintf("%dx%dx%d", img.W, img.H, img.K)
}

// Pixels returns the number of pixels (not counting channels).
func (img *Image) Pixels() int32 {
	return img.W * img.H
}

// InBounds reports whether c lies within the image.
func (img *Image) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < img.W && c.Y >= 0 && c.Y < img.H
}

// Index returns the row-major pixel index of c, ignoring channels.
func (img *Image) Index(c Coord) int32 {
	return c.Y*img.W + c.X
}

// CoordOf is the inverse of Index.
func (img *Image) CoordOf(index int32) Coord {
	return Coord{X: index % img.W, Y: index / img.W}
}

// At returns the channel value at (c, ch).
func (img *Image) At(c Coord, ch int32) float32 {
	return img.Data[(img.Index(c))*img.K+ch]
}

// Set assigns the channel value at (c, ch).
func (img *Image) Set(c Coord, ch int32, v float32) {
	img.Data[(img.Index(c))*img.K+ch] = v
}

// Pixel returns the full channel vector for the pixel at index i (not coord).
func (img *Image) Pixel(i int32) []float32 {
	return img.Data[i*img.K : (i+1)*img.K]
}

// NewImageFromImage allocates a same-shape image with fresh zeroed data,
// for callers that want to transform a copy without mutating the source.
func NewImageFromImage(src *Image) *Image {
	out := NewImage(src.W, src.H, src.K)
	out.ID, out.FileName = src.ID, src.FileName
	return out
}

// Clone deep-copies an image, including its pixel data.
func (img *Image) Clone() *Image {
	out := NewImageFromImage(img)
	copy(out.Data, img.Data)
	return out
}

func channelLabel(ch int32) string {
	switch ch {
	case 0:
		return "R"
	case 1:
		return "G"
	case 2:
		return "B"
	case 3:
		return "depth"
	default:
		return fmt.Sprintf("aux%d", ch-4)
	}
}

func channelLabels(k int32) string {
	labels := make([]string, k)
	for c := int32(0); c < k; c++ {
		labels[c] = channelLabel(c)
	}
	return strings.Join(labels, ",")
}
