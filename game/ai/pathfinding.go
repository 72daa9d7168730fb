package ai

// Point is a 2D grid coordinate.
type Point struct {
	X, Y int
}

// Chebyshev returns the chessboard distance between two points.
// With 8-directional movement this equals the minimum number of steps.
func Chebyshev(a, b Point) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// Adjacent reports whether two distinct points touch, diagonals included.
func Adjacent(a, b Point) bool {
	return a != b && Chebyshev(a, b) == 1
}

// neighborDirs is the fixed expansion order for the 8 neighbors.
// The order is part of the deterministic contract: together with the
// insertion-sequence tie-break it makes path results replayable.
var neighborDirs = [8]Point{
	{0, -1}, {1, 0}, {0, 1}, {-1, 0}, // N E S W
	{1, -1}, {1, 1}, {-1, 1}, {-1, -1}, // NE SE SW NW
}

// PathView is the minimal level access pathfinding needs.
type PathView interface {
	InBounds(x, y int) bool
	// Walkable reports whether the tile can be stepped on: floors and open
	// doors yes; walls, closed doors and secret doors no.
	Walkable(x, y int) bool
	// Occupied reports whether another monster currently stands on the tile.
	Occupied(x, y int) bool
}

// PathOptions tunes a single search.
type PathOptions struct {
	// MaxExpansions caps the number of nodes popped from the open set.
	// Exceeding the cap means "unreachable" (nil path), not an error.
	MaxExpansions int
	// MonstersBlock treats tiles occupied by other monsters as impassable.
	MonstersBlock bool
}

type pathNode struct {
	pt     Point
	g, f   int
	seq    int // insertion order, tie-break for equal f
	parent *pathNode
}

// pathHeap is a binary min-heap ordered by (f, seq). Among equal f-scores
// the node discovered first wins, keeping results deterministic.
type pathHeap []*pathNode

func (h pathHeap) less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].seq < h[j].seq
}

func (h *pathHeap) push(n *pathNode) {
	*h = append(*h, n)
	i := len(*h) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if (*h).less(parent, i) {
			break
		}
		(*h)[parent], (*h)[i] = (*h)[i], (*h)[parent]
		i = parent
	}
}

func (h *pathHeap) pop() *pathNode {
	s := *h
	n := s[0]
	last := len(s) - 1
	s[0] = s[last]
	s = s[:last]
	*h = s
	i := 0
	for {
		left, right := 2*i+1, 2*i+2
		smallest := i
		if left < len(s) && s.less(left, smallest) {
			smallest = left
		}
		if right < len(s) && s.less(right, smallest) {
			smallest = right
		}
		if smallest == i {
			break
		}
		s[i], s[smallest] = s[smallest], s[i]
		i = smallest
	}
	return n
}

// FindPath runs A* from `from` to `to` over the given view.
// The path excludes the start and includes the destination.
// Returns nil when no path exists or the expansion budget runs out.
func FindPath(v PathView, from, to Point, opts PathOptions) []Point {
	if v == nil || from == to {
		return nil
	}
	if !v.InBounds(to.X, to.Y) || !v.Walkable(to.X, to.Y) {
		return nil
	}

	open := pathHeap{}
	closed := make(map[Point]bool)
	gScore := make(map[Point]int)

	seq := 0
	start := &pathNode{pt: from, g: 0, f: Chebyshev(from, to), seq: seq}
	gScore[from] = 0
	open.push(start)

	expansions := 0
	for len(open) > 0 {
		cur := open.pop()
		if closed[cur.pt] {
			continue
		}
		closed[cur.pt] = true

		if cur.pt == to {
			return reconstruct(cur)
		}

		expansions++
		if opts.MaxExpansions > 0 && expansions > opts.MaxExpansions {
			return nil // budget exhausted: caller degrades to greedy movement
		}

		for _, d := range neighborDirs {
			np := Point{cur.pt.X + d.X, cur.pt.Y + d.Y}
			if closed[np] {
				continue
			}
			if !v.InBounds(np.X, np.Y) || !v.Walkable(np.X, np.Y) {
				continue
			}
			// Occupied tiles block expansion, except the destination itself:
			// the searcher wants to reach the target, not stand politely next
			// to it forever.
			if opts.MonstersBlock && np != to && v.Occupied(np.X, np.Y) {
				continue
			}
			ng := cur.g + 1
			if prev, ok := gScore[np]; ok && ng >= prev {
				continue
			}
			gScore[np] = ng
			seq++
			open.push(&pathNode{
				pt:     np,
				g:      ng,
				f:      ng + Chebyshev(np, to),
				seq:    seq,
				parent: cur,
			})
		}
	}
	return nil
}

func reconstruct(end *pathNode) []Point {
	var path []Point
	for n := end; n.parent != nil; n = n.parent {
		path = append(path, n.pt)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
