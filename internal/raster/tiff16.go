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
	"io"
	"os"

	"golang.org/x/image/tiff"
)

// WriteChannelTIFF16ToFile renders a single channel (typically depth, for
// precision beyond 8-bit JPEG preview) as a 16-bit grayscale TIFF, assumed
// normalized to [0,1].
func (img *Image) WriteChannelTIFF16ToFile(fileName string, ch int32) error {
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer file.Close()
	w := bufio.NewWriter(file)
	defer w.Flush()
	return img.WriteChannelTIFF16(w, ch)
}

func (img *Image) WriteChannelTIFF16(w io.Writer, ch int32) error {
	dst := image.NewGray16(image.Rect(0, 0, int(img.W), int(img.H)))
	for y := int32(0); y < img.H; y++ {
		for x := int32(0); x < img.W; x++ {
			v := clamp01(img.At(Coord{X: x, Y: y}, ch))
			dst.SetGray16(int(x), int(y), color.Gray16{Y: uint16(v * 65535)})
		}
	}
	return tiff.Encode(w, dst, &tiff.Options{Compression: tiff.Uncompressed, Predictor: false})
}
