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

// Package seedio reads and writes the system-boundary persisted formats from
// spec.md §6: seed sets as PNG or text, and masks as 8-bit single-channel
// PNG. None of this is consulted by the core segmentation logic; it exists
// only for the CLI/server wrapper.
package seedio

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/jtpils/lidarseg/internal/raster"
	"github.com/jtpils/lidarseg/internal/session"
)

// ReadSeedPNGFile loads a 3-channel PNG where green (0,255,0) pixels are
// sources and red (255,0,0) pixels are sinks.
func ReadSeedPNGFile(fileName string) (session.SeedSet, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return session.SeedSet{}, err
	}
	defer f.Close()
	return ReadSeedPNG(f)
}

func ReadSeedPNG(r io.Reader) (session.SeedSet, error) {
	img, err := png.Decode(r)
	if err != nil {
		return session.SeedSet{}, err
	}
	bounds := img.Bounds()
	var seeds session.SeedSet
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			r8, g8, b8 := r>>8, g>>8, b>>8
			c := raster.Coord{X: int32(x - bounds.Min.X), Y: int32(y - bounds.Min.Y)}
			switch {
			case r8 == 0 && g8 == 255 && b8 == 0:
				seeds.Sources = append(seeds.Sources, c)
			case r8 == 255 && g8 == 0 && b8 == 0:
				seeds.Sinks = append(seeds.Sinks, c)
			}
		}
	}
	return seeds, nil
}

// WriteSeedPNGToFile renders seeds over a w x h black canvas, green for
// sources and red for sinks, useful for round-tripping UI-drawn scribbles.
func WriteSeedPNGToFile(fileName string, seeds session.SeedSet, w, h int32) error {
	f, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteSeedPNG(f, seeds, w, h)
}

func WriteSeedPNG(w io.Writer, seeds session.SeedSet, width, height int32) error {
	img := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	for _, c := range seeds.Sources {
		img.SetRGBA(int(c.X), int(c.Y), color.RGBA{0, 255, 0, 255})
	}
	for _, c := range seeds.Sinks {
		img.SetRGBA(int(c.X), int(c.Y), color.RGBA{255, 0, 0, 255})
	}
	return png.Encode(w, img)
}
