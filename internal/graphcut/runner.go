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

package graphcut

import "errors"

// ErrSolverFailure wraps a MaxFlowSolver's internal failure; its message is
// attached verbatim, per spec.md's SolverFailure error kind.
var ErrSolverFailure = errors.New("graphcut: max-flow solver failure")

// ErrCancelled is returned when a cancellation token trips mid-run.
var ErrCancelled = errors.New("graphcut: cancelled")

// Cut is the outcome of running MinCutRunner: the total flow value (the
// exposed observable from spec.md §4.6) and a 0/255 mask, 255 on the S
// (foreground) side.
type Cut struct {
	Flow float32
	Mask []byte
}

// MinCutRunner passes a Graph to a MaxFlowSolver and turns its terminal-side
// verdict into a mask. It never implements max-flow itself (spec.md §6); it
// only wires the solver's Result into the segmentation's output shape.
type MinCutRunner struct {
	Solver MaxFlowSolver
}

// Run executes solver.MaxFlow and converts the result into a Cut. cancel is
// forwarded unchanged; nil means unconditional run-to-completion.
func (r MinCutRunner) Run(g *Graph, cancel <-chan struct{}) (Cut, error) {
	res, err := r.Solver.MaxFlow(g, cancel)
	if err != nil {
		if errors.Is(err, ErrCancelled) {
			return Cut{}, ErrCancelled
		}
		return Cut{}, errAttach(err)
	}
	mask := make([]byte, len(res.SourceSide))
	for i, onSource := range res.SourceSide {
		if onSource {
			mask[i] = 255
		}
	}
	return Cut{Flow: res.Flow, Mask: mask}, nil
}

func errAttach(err error) error {
	return &solverError{underlying: err}
}

type solverError struct {
	underlying error
}

func (e *solverError) Error() string {
	return ErrSolverFailure.Error() + ": " + e.underlying.Error()
}

func (e *solverError) Unwrap() error {
	return ErrSolverFailure
}
