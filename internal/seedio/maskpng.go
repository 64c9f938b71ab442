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

package seedio

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/jtpils/lidarseg/internal/morph"
)

// WriteMaskPNGToFile persists a segmentation mask as an 8-bit single-channel
// PNG, the format spec.md §6 specifies at the system boundary.
func WriteMaskPNGToFile(fileName string, m *morph.Mask) error {
	f, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteMaskPNG(f, m)
}

func WriteMaskPNG(w io.Writer, m *morph.Mask) error {
	img := image.NewGray(image.Rect(0, 0, int(m.W), int(m.H)))
	copy(img.Pix, m.Data)
	return png.Encode(w, img)
}

// ReadMaskPNGFile loads an 8-bit single-channel mask PNG.
func ReadMaskPNGFile(fileName string) (*morph.Mask, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadMaskPNG(f)
}

func ReadMaskPNG(r io.Reader) (*morph.Mask, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	w, h := int32(bounds.Dx()), int32(bounds.Dy())
	m := morph.NewMask(w, h)
	gray, ok := img.(*image.Gray)
	if ok {
		copy(m.Data, gray.Pix)
		return m, nil
	}
	for y := 0; y < int(h); y++ {
		for x := 0; x < int(w); x++ {
			c := color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
			m.Data[int32(y)*w+int32(x)] = c.Y
		}
	}
	return m, nil
}
