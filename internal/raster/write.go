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
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// WriteFile persists the image as an ASCII-header raster container with
// NAXIS1/2/3=W,H,K cards followed by big-endian float32 pixel data.
func (img *Image) WriteFile(fileName string) error {
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	defer w.Flush()
	return img.Write(w)
}

func (img *Image) Write(w *bufio.Writer) error {
	if err := writeHeader(w, img.W, img.H, img.K); err != nil {
		return err
	}
	buf := make([]byte, 4)
	for _, v := range img.Data {
		binary.BigEndian.PutUint32(buf, math.Float32bits(v))
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

func writeHeader(w *bufio.Writer, width, height, channels int32) error {
	cards := []string{
		fmt.Sprintf("NAXIS1  = %-20d / width", width),
		fmt.Sprintf("NAXIS2  = %-20d / height", height),
		fmt.Sprintf("NAXIS3  = %-20d / channels", channels),
		"END",
	}
	written := 0
	for _, c := range cards {
		line := padCard(c)
		if _, err := w.WriteString(line); err != nil {
			return err
		}
		written += len(line)
	}
	// pad to a full header block with blank cards
	for written%headerBlockSize != 0 {
		line := padCard("")
		if _, err := w.WriteString(line); err != nil {
			return err
		}
		written += len(line)
	}
	return nil
}

func padCard(s string) string {
	if len(s) >= headerLineSize {
		return s[:headerLineSize]
	}
	return s + spaces(headerLineSize-len(s))
}

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
