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

// Package rest exposes the segmentation core over HTTP, per spec.md §6 "the
// windowed GUI" being out of scope but a programmatic wrapper still needed
// for the CLI's "serve" command.
package rest

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/jtpils/lidarseg/internal/graphcut"
	"github.com/jtpils/lidarseg/internal/ops"
	"github.com/jtpils/lidarseg/internal/raster"
	"github.com/jtpils/lidarseg/internal/seedio"
	"github.com/jtpils/lidarseg/internal/session"
)

// MakeSandbox (see sandbox_unix.go / sandbox_windows.go) secures the
// process by chrooting and dropping privileges before Serve accepts
// requests.

// Server wires a MaxFlowSolver into the HTTP handlers; the solver is the
// external collaborator capability from spec.md §6.
type Server struct {
	Solver graphcut.MaxFlowSolver
}

// Serve runs the API on the given address ("" means gin's default
// 0.0.0.0:8080).
func (s *Server) Serve(addr string) error {
	r := gin.Default()
	api := r.Group("/api")
	{
		v1 := api.Group("/v1")
		{
			v1.GET("/ping", getPing)
			v1.POST("/segment", s.postSegment)
			v1.POST("/segment2", s.postSegmentTwoPass)
		}
	}
	if addr == "" {
		return r.Run()
	}
	return r.Run(addr)
}

func getPing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// segmentRequest names the on-disk files a request operates on: the core
// itself never does file I/O (spec.md "Out of scope"), so this boundary
// type is where paths turn into an *raster.Image and a session.SeedSet.
type segmentRequest struct {
	ImageFile string         `json:"imageFile" binding:"required"`
	SeedFile  string         `json:"seedFile" binding:"required"`
	MaskFile  string         `json:"maskFile" binding:"required"`
	Params    session.Params `json:"params"`
}

func (s *Server) postSegment(c *gin.Context) {
	s.runSegmentation(c, false)
}

func (s *Server) postSegmentTwoPass(c *gin.Context) {
	s.runSegmentation(c, true)
}

func (s *Server) runSegmentation(c *gin.Context, twoPass bool) {
	var req segmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logWriter := c.Writer
	header := logWriter.Header()
	header.Set("Content-Type", "text/plain")
	logWriter.WriteHeader(http.StatusOK)
	defer debug.FreeOSMemory()

	img, err := raster.NewImageFromFile(req.ImageFile, 0)
	if err != nil {
		fmt.Fprintf(logWriter, "error loading image: %s\n", err.Error())
		return
	}

	seeds, err := readSeedFile(req.SeedFile)
	if err != nil {
		fmt.Fprintf(logWriter, "error loading seeds: %s\n", err.Error())
		return
	}

	job := &ops.Job{Image: img, Seeds: seeds, Params: req.Params}
	var step ops.OperatorUnary
	if twoPass {
		step = ops.NewOpSegmentTwoPass(s.Solver)
	} else {
		step = ops.NewOpSegment(s.Solver)
	}
	job, err = step.Apply(job, logWriter)
	if err != nil {
		fmt.Fprintf(logWriter, "error segmenting: %s\n", err.Error())
		return
	}

	saver := ops.NewOpSaveMask(req.MaskFile)
	if _, err := saver.Apply(job, logWriter); err != nil {
		fmt.Fprintf(logWriter, "error saving mask: %s\n", err.Error())
		return
	}

	if f, ok := logWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func readSeedFile(fileName string) (session.SeedSet, error) {
	if len(fileName) > 4 && fileName[len(fileName)-4:] == ".png" {
		return seedio.ReadSeedPNGFile(fileName)
	}
	return seedio.ReadSeedTextFile(fileName)
}
