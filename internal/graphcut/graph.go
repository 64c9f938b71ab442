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

// Package graphcut assembles the s-t graph for an image segmentation cut and
// hands it to an external MaxFlowSolver capability (spec.md §6); it never
// implements max-flow itself. Package refflow ships one reference solver for
// the CLI and tests to wire in.
package graphcut

// SLink is a source-side terminal edge: S -> Node, capacity Cap.
type SLink struct {
	Node int32
	Cap  float32
}

// TLink is a sink-side terminal edge: Node -> T, capacity Cap.
type TLink struct {
	Node int32
	Cap  float32
}

// NLink is a symmetric neighbour edge between two pixel nodes.
type NLink struct {
	A, B int32
	Cap  float32
}

// Graph is the max-flow problem instance handed to a MaxFlowSolver: NumNodes
// pixel nodes, plus an implicit source S and sink T.
type Graph struct {
	NumNodes int32
	SLinks   []SLink
	TLinks   []TLink
	NLinks   []NLink
}

// Result is what a MaxFlowSolver returns: the total flow value and, per
// node, which terminal it ended up attached to after the cut.
type Result struct {
	Flow       float32
	SourceSide []bool // true if node is on the S side of the min cut
}

// MaxFlowSolver is the external collaborator capability from spec.md §6.
// The core never specifies or depends on a particular algorithm; cancel may
// be nil, in which case the solver runs to completion.
type MaxFlowSolver interface {
	MaxFlow(g *Graph, cancel <-chan struct{}) (Result, error)
}
