package game

import "math"

// NoSite marks a missing site, e.g. the predecessor of a BFS source.
const NoSite = -1

// Unbounded disables the depth limit of a BFS.
const Unbounded = math.MaxInt

// Graph exposes the undirected neighbourhood of a site. Implementations must be safe for
// concurrent readers.
type Graph interface {
	Neighbors(site int) []int
}
