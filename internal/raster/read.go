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
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path"
	"regexp"
	"strconv"
	"strings"
)

// Block size and line size of the ASCII header, mirrors the FITS convention
// the teacher's reader uses: fixed-size 80-byte cards packed into 2880-byte
// blocks, terminated by an END card and padded with blank cards.
const headerBlockSize = 2880
const headerLineSize = 80

var reParser *regexp.Regexp = compileHeaderRE()

// NewImageFromFile loads an RGBD raster container, decompressing gzip
// transparently based on file suffix.
func NewImageFromFile(fileName string, id int) (img *Image, err error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if lExt := strings.ToLower(path.Ext(fileName)); lExt == ".gz" || lExt == ".gzip" {
		r, err = gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
	}

	img = &Image{ID: id, FileName: fileName}
	if err = img.read(r); err != nil {
		return nil, err
	}
	if err = img.Validate(); err != nil {
		return nil, err
	}
	return img, nil
}

func (img *Image) read(r io.Reader) error {
	w, h, k, err := readHeader(r, img.ID)
	if err != nil {
		return err
	}
	img.W, img.H, img.K = w, h, k

	numFloats := int64(w) * int64(h) * int64(k)
	img.Data = make([]float32, numFloats)
	buf := make([]byte, 4)
	for i := int64(0); i < numFloats; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return fmt.Errorf("%d: reading pixel data: %w", img.ID, err)
		}
		bits := binary.BigEndian.Uint32(buf)
		img.Data[i] = math.Float32frombits(bits)
	}
	return nil
}

// readHeader reads 2880-byte header blocks of 80-byte KEY=VALUE cards until
// an END card, and returns the NAXISn triple (W,H,K).
func readHeader(r io.Reader, id int) (w, h, k int32, err error) {
	ints := map[string]int32{}
	buf := make([]byte, headerBlockSize)
	done := false
	for !done {
		n, err := io.ReadFull(r, buf)
		if err != nil || n != headerBlockSize {
			return 0, 0, 0, fmt.Errorf("%d: reading header block: %v", id, err)
		}
		for lineNo := 0; lineNo < headerBlockSize/headerLineSize && !done; lineNo++ {
			line := buf[lineNo*headerLineSize : (lineNo+1)*headerLineSize]
			m := reParser.FindSubmatch(line)
			if m == nil {
				continue
			}
			names := reParser.SubexpNames()
			key, isEnd := parseHeaderLine(names, m, ints)
			_ = key
			if isEnd {
				done = true
			}
		}
	}
	w, wok := ints["NAXIS1"]
	h, hok := ints["NAXIS2"]
	k, kok := ints["NAXIS3"]
	if !wok || !hok {
		return 0, 0, 0, fmt.Errorf("%d: header missing NAXIS1/NAXIS2", id)
	}
	if !kok {
		k = 4
	}
	return w, h, k, nil
}

func parseHeaderLine(names []string, values [][]byte, ints map[string]int32) (key string, isEnd bool) {
	for i := 1; i < len(names); i++ {
		if values[i] == nil || len(names[i]) != 1 {
			continue
		}
		switch names[i][0] {
		case 'E':
			isEnd = true
		case 'k':
			key = string(values[i])
		case 'i':
			if v, err := strconv.ParseInt(string(values[i]), 10, 64); err == nil {
				ints[key] = int32(v)
			}
		}
	}
	return key, isEnd
}

// compileHeaderRE builds the regexp recognizing one header card, adapted
// from the teacher's FITS card grammar, stripped down to integer/end/blank
// cards (the raster container has no need for the full FITS type zoo).
func compileHeaderRE() *regexp.Regexp {
	whiteOpt := "\\s*"
	end := "(?P<E>END)"
	endLine := end + whiteOpt
	key := "(?P<k>[A-Z0-9_-]+)"
	inte := "(?P<i>[+-]?[0-9]+)"
	commOpt := "(?:/(?P<c>.*))?"
	keyLine := key + whiteOpt + "=" + whiteOpt + inte + whiteOpt + commOpt
	lineRe := "^(?:" + whiteOpt + "|" + keyLine + "|" + endLine + ")$"
	return regexp.MustCompile(lineRe)
}
