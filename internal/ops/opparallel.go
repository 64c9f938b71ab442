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

package ops

import (
	"errors"
	"fmt"
	"io"
)

// OpParallel runs an OperatorUnary across many jobs, limiting concurrency to
// MaxThreads goroutines in flight at once via a buffered-channel semaphore.
type OpParallel struct {
	Operator   OperatorUnary `json:"operator"`
	MaxThreads int64         `json:"maxThreads"`
}

var _ OperatorParallel = (*OpParallel)(nil)

func NewOpParallel(operator OperatorUnary, maxThreads int64) *OpParallel {
	return &OpParallel{Operator: operator, MaxThreads: maxThreads}
}

// ApplyToJobs segments every job concurrently, re-entrantly: package
// pipeline's Segment/SegmentTwoPass make no process-wide mutable state
// assumptions, so disjoint jobs are safe to run side by side.
func (op *OpParallel) ApplyToJobs(jobs []*Job, logWriter io.Writer) (jobsOut []*Job, err error) {
	jobsOut = make([]*Job, len(jobs))
	sem := make(chan bool, op.MaxThreads)
	res := make(chan error, len(jobs))
	for i, src := range jobs {
		sem <- true
		go func(i int, j *Job) {
			defer func() { <-sem }()
			out, err := op.Operator.Apply(j, logWriter)
			if err != nil {
				jobsOut[i] = nil
				res <- err
				return
			}
			jobsOut[i] = out
			res <- nil
		}(i, src)
	}
	for i := 0; i < cap(sem); i++ { // wait for goroutines to finish
		sem <- true
	}
	for i := 0; i < len(jobs); i++ {
		if r := <-res; r != nil {
			if err == nil {
				err = r
			} else {
				err = errors.New(fmt.Sprintf("multiple errors: %s, %s", err.Error(), r.Error()))
			}
		}
	}
	return jobsOut, err
}
