package panorama

import "sort"

// PairMatch is one accepted pairwise homography estimate: H maps image I's
// plane into image J's plane, with I < J by construction (Stitch only
// evaluates each unordered pair once) (§3 StitchGraph).
type PairMatch struct {
	I, J    int
	H       Homography
	Inliers int
}

// StitchGraph is the maximum-weight spanning tree over the pairwise
// matches, keyed by inlier count (§3, §4.11).
type StitchGraph struct {
	n     int
	edges map[[2]int]PairMatch
	adj   map[int][]int
}

type dsu struct{ parent []int }

func newDSU(n int) *dsu {
	d := &dsu{parent: make([]int, n)}
	for i := range d.parent {
		d.parent[i] = i
	}
	return d
}

func (d *dsu) find(i int) int {
	if d.parent[i] != i {
		d.parent[i] = d.find(d.parent[i])
	}
	return d.parent[i]
}

func (d *dsu) union(i, j int) {
	ri, rj := d.find(i), d.find(j)
	if ri != rj {
		d.parent[ri] = rj
	}
}

// BuildGraph ranks pairwise matches by inlier count descending and keeps
// the maximum-weight spanning tree edges (Kruskal's algorithm), matching
// the reference's greedy DSU construction (§4.11 scenario 5).
func BuildGraph(n int, pairs []PairMatch) *StitchGraph {
	g := &StitchGraph{n: n, edges: make(map[[2]int]PairMatch, len(pairs)), adj: make(map[int][]int)}
	for _, p := range pairs {
		g.edges[[2]int{p.I, p.J}] = p
	}

	sorted := append([]PairMatch(nil), pairs...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Inliers > sorted[j].Inliers })

	d := newDSU(n)
	edgesUsed := 0
	for _, p := range sorted {
		if edgesUsed == n-1 {
			break
		}
		if d.find(p.I) != d.find(p.J) {
			d.union(p.I, p.J)
			g.adj[p.I] = append(g.adj[p.I], p.J)
			g.adj[p.J] = append(g.adj[p.J], p.I)
			edgesUsed++
		}
	}
	return g
}

// GlobalHomographies roots the spanning tree at its minimum-degree
// vertex (first such vertex in index order on ties) and walks it
// breadth-first, composing each edge's homography into a running global
// transform (§4.11, §9). The returned slice lists vertices in BFS visit
// order; vertices outside the tree (unconnected images, §7.2) are
// omitted.
func GlobalHomographies(g *StitchGraph) (map[int]Homography, []int) {
	if g.n == 0 {
		return map[int]Homography{}, nil
	}
	if g.n == 1 {
		return map[int]Homography{0: Identity()}, []int{0}
	}

	root := -1
	rootDegree := -1
	for i := 0; i < g.n; i++ {
		neighbors, ok := g.adj[i]
		if !ok {
			continue
		}
		if root == -1 || len(neighbors) < rootDegree {
			root = i
			rootDegree = len(neighbors)
		}
	}
	if root == -1 {
		return map[int]Homography{}, nil
	}

	globals := map[int]Homography{root: Identity()}
	order := []int{root}
	visited := map[int]bool{root: true}
	queue := []int{root}

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range g.adj[u] {
			if visited[v] {
				continue
			}
			visited[v] = true

			var hvu Homography
			if p, ok := g.edges[[2]int{v, u}]; ok {
				hvu = p.H
			} else if p, ok := g.edges[[2]int{u, v}]; ok {
				inv, invOK := p.H.Invert()
				if !invOK {
					continue
				}
				hvu = inv
			} else {
				continue
			}

			globals[v] = globals[u].Mul(hvu)
			order = append(order, v)
			queue = append(queue, v)
		}
	}
	return globals, order
}
