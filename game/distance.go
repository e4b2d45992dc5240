package game

// DistanceTable maps a mine to the hop distance of every site reachable from it.
type DistanceTable map[int]map[int]int

// NewDistanceTable runs one unbounded BFS per mine over g.
func NewDistanceTable(mines []int, g Graph) DistanceTable {
	table := make(DistanceTable, len(mines))
	for _, mine := range mines {
		distances := make(map[int]int)
		for v := range BFS([]int{mine}, g, Unbounded) {
			distances[v.Site] = v.Distance
		}
		table[mine] = distances
	}
	return table
}

// Distance returns the hop distance from mine to site, if site is reachable.
func (t DistanceTable) Distance(mine, site int) (int, bool) {
	d, ok := t[mine][site]
	return d, ok
}
