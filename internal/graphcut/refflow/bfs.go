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

// Package refflow is a bundled reference implementation of the
// graphcut.MaxFlowSolver capability (spec.md §6's external collaborator),
// shipped so the CLI and tests are runnable without a third-party max-flow
// library. Core decision logic never imports this package; only cmd and
// tests wire the two together.
package refflow

import (
	"github.com/jtpils/lidarseg/internal/graphcut"
)

// edge is one directed arc of the residual graph, paired with the index of
// its reverse arc in the same node's adjacency list.
type edge struct {
	to   int32
	cap  float32
	rev  int32
}

// BFSSolver computes max-flow/min-cut via repeated BFS augmenting paths
// (Edmonds-Karp). It runs in O(V*E^2) and is meant for the modest node
// counts of interactive segmentation crops, not production-scale graphs.
type BFSSolver struct{}

var errCancelled = graphcut.ErrCancelled

func (BFSSolver) MaxFlow(g *graphcut.Graph, cancel <-chan struct{}) (graphcut.Result, error) {
	n := g.NumNodes
	src := n
	sink := n + 1
	total := n + 2

	adj := make([][]edge, total)
	addEdge := func(a, b int32, cap float32) {
		adj[a] = append(adj[a], edge{to: b, cap: cap, rev: int32(len(adj[b]))})
		adj[b] = append(adj[b], edge{to: a, cap: 0, rev: int32(len(adj[a]) - 1)})
	}
	for _, e := range g.SLinks {
		addEdge(src, e.Node, e.Cap)
	}
	for _, e := range g.TLinks {
		addEdge(e.Node, sink, e.Cap)
	}
	for _, e := range g.NLinks {
		addEdge(e.A, e.B, e.Cap)
		addEdge(e.B, e.A, e.Cap)
	}

	var flow float32
	for {
		select {
		case <-cancel:
			return graphcut.Result{}, errCancelled
		default:
		}

		parent, parentEdge, found := bfsAugmentingPath(adj, src, sink, total)
		if !found {
			break
		}

		bottleneck := pathBottleneck(adj, parent, parentEdge, src, sink)
		applyPathFlow(adj, parent, parentEdge, src, sink, bottleneck)
		flow += bottleneck
	}

	visited := bfsReachable(adj, src, total)
	sourceSide := make([]bool, n)
	for i := int32(0); i < n; i++ {
		sourceSide[i] = visited[i]
	}
	return graphcut.Result{Flow: flow, SourceSide: sourceSide}, nil
}

// bfsAugmentingPath finds a shortest (fewest-edges) path from src to sink
// with positive residual capacity. parentEdge[v] indexes into adj[parent[v]]
// for the edge used to reach v.
func bfsAugmentingPath(adj [][]edge, src, sink int32, total int32) (parent []int32, parentEdge []int32, found bool) {
	parent = make([]int32, total)
	parentEdge = make([]int32, total)
	visited := make([]bool, total)
	for i := range parent {
		parent[i] = -1
	}
	visited[src] = true
	queue := []int32{src}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		if u == sink {
			return parent, parentEdge, true
		}
		for ei, e := range adj[u] {
			if e.cap > 0 && !visited[e.to] {
				visited[e.to] = true
				parent[e.to] = u
				parentEdge[e.to] = int32(ei)
				queue = append(queue, e.to)
			}
		}
	}
	return parent, parentEdge, visited[sink]
}

func pathBottleneck(adj [][]edge, parent, parentEdge []int32, src, sink int32) float32 {
	bottleneck := float32(1e30)
	for v := sink; v != src; v = parent[v] {
		u := parent[v]
		e := adj[u][parentEdge[v]]
		if e.cap < bottleneck {
			bottleneck = e.cap
		}
	}
	return bottleneck
}

func applyPathFlow(adj [][]edge, parent, parentEdge []int32, src, sink int32, amount float32) {
	for v := sink; v != src; v = parent[v] {
		u := parent[v]
		ei := parentEdge[v]
		adj[u][ei].cap -= amount
		rev := adj[u][ei].rev
		adj[v][rev].cap += amount
	}
}

func bfsReachable(adj [][]edge, src int32, total int32) []bool {
	visited := make([]bool, total)
	visited[src] = true
	queue := []int32{src}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, e := range adj[u] {
			if e.cap > 0 && !visited[e.to] {
				visited[e.to] = true
				queue = append(queue, e.to)
			}
		}
	}
	return visited
}
