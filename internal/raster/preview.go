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

package raster

import (
	"bufio"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"math"
	"os"
)

// WriteColorPreviewJPGToFile renders channels 0,1,2 (RGB) of the image,
// assumed normalized to [0,1], as an 8-bit JPEG.
func (img *Image) WriteColorPreviewJPGToFile(fileName string, quality int) error {
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer file.Close()
	w := bufio.NewWriter(file)
	defer w.Flush()
	return img.WriteColorPreviewJPG(w, quality)
}

func (img *Image) WriteColorPreviewJPG(w io.Writer, quality int) error {
	dst := image.NewRGBA(image.Rect(0, 0, int(img.W), int(img.H)))
	for y := int32(0); y < img.H; y++ {
		for x := int32(0); x < img.W; x++ {
			c := Coord{X: x, Y: y}
			r := clamp01(img.At(c, 0))
			g := clamp01(img.At(c, 1))
			b := clamp01(img.At(c, 2))
			dst.SetRGBA(int(x), int(y), color.RGBA{uint8(r * 255), uint8(g * 255), uint8(b * 255), 255})
		}
	}
	return jpeg.Encode(w, dst, &jpeg.Options{Quality: quality})
}

// WriteChannelPreviewJPGToFile renders a single channel (e.g. depth) as a
// grayscale JPEG, assumed normalized to [0,1].
func (img *Image) WriteChannelPreviewJPGToFile(fileName string, ch int32, quality int) error {
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer file.Close()
	w := bufio.NewWriter(file)
	defer w.Flush()

	dst := image.NewGray(image.Rect(0, 0, int(img.W), int(img.H)))
	for y := int32(0); y < img.H; y++ {
		for x := int32(0); x < img.W; x++ {
			v := clamp01(img.At(Coord{X: x, Y: y}, ch))
			dst.SetGray(int(x), int(y), color.Gray{Y: uint8(v * 255)})
		}
	}
	return jpeg.Encode(w, dst, &jpeg.Options{Quality: quality})
}

func clamp01(v float32) float32 {
	if math.IsNaN(float64(v)) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
