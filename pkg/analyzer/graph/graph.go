// Package graph computes centrality metrics over the route call graph and
// the record composition graph.
package graph

import (
	"sort"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/drafter-edu/analyze-drafter-site/pkg/analyzer/site"
)

// Node is one graph node with its centrality metrics.
type Node struct {
	Name      string  `json:"name"`
	Rank      float64 `json:"rank"`
	InDegree  int     `json:"inDegree"`
	OutDegree int     `json:"outDegree"`
}

// Metrics holds centrality results for a set of edges. Nodes are sorted by
// descending PageRank, ties broken by name.
type Metrics struct {
	Nodes  []Node     `json:"nodes"`
	Cycles [][]string `json:"cycles,omitempty"`
}

// directedGraph pairs a gonum graph with name mappings.
type directedGraph struct {
	graph     *simple.DirectedGraph
	nameToID  map[string]int64
	idToName  map[int64]string
	selfLoops map[string]struct{}
}

// Compute builds a directed graph from edges and calculates PageRank,
// degrees, and strongly connected components. Edge endpoints not seen
// before become nodes.
func Compute(edges []site.Edge) *Metrics {
	g := toDirected(edges)
	m := &Metrics{}
	if len(g.nameToID) == 0 {
		return m
	}

	ranks := network.PageRank(g.graph, 0.85, 1e-6)

	inDegree := make(map[string]int, len(g.nameToID))
	outDegree := make(map[string]int, len(g.nameToID))
	for _, e := range edges {
		if e.From == e.To {
			continue
		}
		outDegree[e.From]++
		inDegree[e.To]++
	}

	for name, id := range g.nameToID {
		m.Nodes = append(m.Nodes, Node{
			Name:      name,
			Rank:      ranks[id],
			InDegree:  inDegree[name],
			OutDegree: outDegree[name],
		})
	}
	sort.Slice(m.Nodes, func(i, j int) bool {
		if m.Nodes[i].Rank != m.Nodes[j].Rank {
			return m.Nodes[i].Rank > m.Nodes[j].Rank
		}
		return m.Nodes[i].Name < m.Nodes[j].Name
	})

	m.Cycles = findCycles(g)
	return m
}

// toDirected converts edges to a gonum directed graph. Self-loops are
// recorded separately; gonum simple graphs reject them.
func toDirected(edges []site.Edge) *directedGraph {
	g := &directedGraph{
		graph:     simple.NewDirectedGraph(),
		nameToID:  make(map[string]int64),
		idToName:  make(map[int64]string),
		selfLoops: make(map[string]struct{}),
	}

	id := func(name string) int64 {
		if n, ok := g.nameToID[name]; ok {
			return n
		}
		n := int64(len(g.nameToID))
		g.nameToID[name] = n
		g.idToName[n] = name
		g.graph.AddNode(simple.Node(n))
		return n
	}

	for _, e := range edges {
		from := id(e.From)
		to := id(e.To)
		if from == to {
			g.selfLoops[e.From] = struct{}{}
			continue
		}
		g.graph.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
	}
	return g
}

// findCycles returns strongly connected components of size two or more,
// plus single-node self-loops, each sorted by name.
func findCycles(g *directedGraph) [][]string {
	var cycles [][]string

	for _, scc := range topo.TarjanSCC(g.graph) {
		if len(scc) < 2 {
			continue
		}
		names := make([]string, 0, len(scc))
		for _, node := range scc {
			names = append(names, g.idToName[node.ID()])
		}
		sort.Strings(names)
		cycles = append(cycles, names)
	}

	for name := range g.selfLoops {
		cycles = append(cycles, []string{name})
	}

	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i][0] < cycles[j][0]
	})
	return cycles
}
