package graph

import (
	"math"
	"reflect"
	"testing"

	"github.com/drafter-edu/analyze-drafter-site/pkg/analyzer/site"
)

func TestComputeEmpty(t *testing.T) {
	m := Compute(nil)
	if len(m.Nodes) != 0 || len(m.Cycles) != 0 {
		t.Errorf("Compute(nil) = %+v", m)
	}
}

func TestComputeDegrees(t *testing.T) {
	edges := []site.Edge{
		{From: "index", To: "shop"},
		{From: "index", To: "about"},
		{From: "shop", To: "checkout"},
		{From: "about", To: "checkout"},
	}

	m := Compute(edges)
	if len(m.Nodes) != 4 {
		t.Fatalf("got %d nodes, want 4", len(m.Nodes))
	}

	byName := make(map[string]Node, len(m.Nodes))
	for _, n := range m.Nodes {
		byName[n.Name] = n
	}

	cases := []struct {
		name    string
		in, out int
	}{
		{"index", 0, 2},
		{"shop", 1, 1},
		{"about", 1, 1},
		{"checkout", 2, 0},
	}
	for _, tc := range cases {
		n := byName[tc.name]
		if n.InDegree != tc.in || n.OutDegree != tc.out {
			t.Errorf("%s degrees = (in %d, out %d), want (in %d, out %d)",
				tc.name, n.InDegree, n.OutDegree, tc.in, tc.out)
		}
	}
}

func TestComputeRanksSinkHighest(t *testing.T) {
	// Every page links to checkout, so checkout accumulates the most rank.
	edges := []site.Edge{
		{From: "index", To: "checkout"},
		{From: "shop", To: "checkout"},
		{From: "about", To: "checkout"},
	}

	m := Compute(edges)
	if m.Nodes[0].Name != "checkout" {
		t.Errorf("top node = %s, want checkout", m.Nodes[0].Name)
	}

	var total float64
	for _, n := range m.Nodes {
		if n.Rank <= 0 {
			t.Errorf("%s rank = %v", n.Name, n.Rank)
		}
		total += n.Rank
	}
	if math.Abs(total-1.0) > 1e-3 {
		t.Errorf("rank sum = %v, want ~1", total)
	}
}

func TestComputeCycles(t *testing.T) {
	edges := []site.Edge{
		{From: "index", To: "shop"},
		{From: "shop", To: "index"},
		{From: "shop", To: "done"},
	}

	m := Compute(edges)
	want := [][]string{{"index", "shop"}}
	if !reflect.DeepEqual(m.Cycles, want) {
		t.Errorf("Cycles = %v, want %v", m.Cycles, want)
	}
}

func TestComputeSelfLoopCycle(t *testing.T) {
	edges := []site.Edge{
		{From: "refresh", To: "refresh"},
		{From: "index", To: "refresh"},
	}

	m := Compute(edges)
	want := [][]string{{"refresh"}}
	if !reflect.DeepEqual(m.Cycles, want) {
		t.Errorf("Cycles = %v, want %v", m.Cycles, want)
	}

	byName := make(map[string]Node, len(m.Nodes))
	for _, n := range m.Nodes {
		byName[n.Name] = n
	}
	// Self-loops do not count toward degrees.
	if n := byName["refresh"]; n.InDegree != 1 || n.OutDegree != 0 {
		t.Errorf("refresh degrees = %+v", n)
	}
}

func TestComputeAcyclic(t *testing.T) {
	edges := []site.Edge{
		{From: "a", To: "b"},
		{From: "b", To: "c"},
	}
	if m := Compute(edges); len(m.Cycles) != 0 {
		t.Errorf("Cycles = %v, want none", m.Cycles)
	}
}
