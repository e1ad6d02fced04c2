package synthesizer

// digraph represents directed dependency graph between vertices
type digraph struct {
	incoming map[Vertex][]Vertex
}

func newDigraph() *digraph {
	return &digraph{incoming: map[Vertex][]Vertex{}}
}

func (g *digraph) addEdge(from, to Vertex) {
	for _, candidate := range g.incoming[to] {
		if candidate == from {
			return
		}
	}
	g.incoming[to] = append(g.incoming[to], from)
}

// ancestors returns vertex followed by every vertex with a path leading to it, breadth first
func (g *digraph) ancestors(vertex Vertex) []Vertex {
	visited := map[Vertex]bool{vertex: true}
	result := []Vertex{vertex}
	for i := 0; i < len(result); i++ {
		for _, from := range g.incoming[result[i]] {
			if visited[from] {
				continue
			}
			visited[from] = true
			result = append(result, from)
		}
	}
	return result
}
