package game

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

type Site struct {
	ID int `json:"id"`
}

// River is an undirected edge between two sites.
type River struct {
	Source int `json:"source"`
	Target int `json:"target"`
}

// Canonical returns the river with its endpoints ordered, so both orientations share one identity.
func (r River) Canonical() River {
	if r.Source > r.Target {
		return River{Source: r.Target, Target: r.Source}
	}
	return r
}

// Touches reports whether site is one of the river's endpoints.
func (r River) Touches(site int) bool {
	return r.Source == site || r.Target == site
}

func (r River) String() string {
	return fmt.Sprintf("%d-%d", r.Source, r.Target)
}

// Map is the static board: sites, rivers between them and the mines.
type Map struct {
	Sites  []Site  `json:"sites,omitempty"`
	Rivers []River `json:"rivers,omitempty"`
	Mines  []int   `json:"mines,omitempty"`
}

// IsMine reports whether site is a mine.
func (m *Map) IsMine(site int) bool {
	for _, mine := range m.Mines {
		if mine == site {
			return true
		}
	}
	return false
}

// HasRiver reports whether the map has a river between the two sites, in either orientation.
func (m *Map) HasRiver(r River) bool {
	key := r.Canonical()
	for _, river := range m.Rivers {
		if river.Canonical() == key {
			return true
		}
	}
	return false
}

// ReadMap decodes a map document.
func ReadMap(r io.Reader) (*Map, error) {
	var m Map
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode map: %w", err)
	}
	return &m, nil
}

// LoadMap reads a map document from a file.
func LoadMap(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open map: %w", err)
	}
	defer f.Close()
	return ReadMap(f)
}

// Adjacency is the immutable neighbourhood of every site, built once from a river list.
type Adjacency map[int][]int

// NewAdjacency builds the adjacency of the given rivers. Duplicate rivers collapse into one edge.
func NewAdjacency(rivers []River) Adjacency {
	adj := make(Adjacency)
	seen := make(map[River]bool, len(rivers))
	for _, river := range rivers {
		key := river.Canonical()
		if seen[key] {
			continue
		}
		seen[key] = true
		adj[river.Source] = append(adj[river.Source], river.Target)
		adj[river.Target] = append(adj[river.Target], river.Source)
	}
	return adj
}

func (a Adjacency) Neighbors(site int) []int {
	return a[site]
}

type without struct {
	graph  Graph
	hidden map[River]bool
}

// Without returns a view of g in which the given rivers do not exist. The underlying graph is not
// copied or modified.
func Without(g Graph, rivers ...River) Graph {
	if len(rivers) == 0 {
		return g
	}
	hidden := make(map[River]bool, len(rivers))
	for _, r := range rivers {
		hidden[r.Canonical()] = true
	}
	return without{graph: g, hidden: hidden}
}

func (w without) Neighbors(site int) []int {
	all := w.graph.Neighbors(site)
	out := make([]int, 0, len(all))
	for _, n := range all {
		if !w.hidden[River{Source: site, Target: n}.Canonical()] {
			out = append(out, n)
		}
	}
	return out
}
