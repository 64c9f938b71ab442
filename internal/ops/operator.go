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

// Package ops wraps the segmentation pipeline in the Active/JSON operator
// idiom: each step is independently toggleable and JSON-configurable, and
// batches of jobs can be run with bounded concurrency.
package ops

import (
	"io"

	"github.com/jtpils/lidarseg/internal/pipeline"
	"github.com/jtpils/lidarseg/internal/raster"
	"github.com/jtpils/lidarseg/internal/session"
)

// Job is the unit of work an operator transforms: an image plus the seeds
// and params to segment it with, accumulating results as steps run.
type Job struct {
	ID            int
	Image         *raster.Image
	Seeds         session.SeedSet
	Params        session.Params
	Result        pipeline.Result
	TwoPassResult pipeline.TwoPassResult
	TwoPass       bool
}

// OperatorSource sources a single Job, e.g. by loading an image and its
// seeds from disk.
type OperatorSource interface {
	Apply(logWriter io.Writer) (job *Job, err error)
}

// OperatorUnary transforms a single Job, overwriting and returning it.
type OperatorUnary interface {
	Apply(job *Job, logWriter io.Writer) (jobOut *Job, err error)
}

// OperatorParallel runs an OperatorUnary over many jobs concurrently.
type OperatorParallel interface {
	ApplyToJobs(jobs []*Job, logWriter io.Writer) (jobsOut []*Job, err error)
}
