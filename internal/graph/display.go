package graph

import (
	"fmt"
	"io"
	"strings"
)

// Describe writes a human-readable enumeration of the graph's depths and
// connections to w, one connection per line as
// "[producer ...] --op--> consumer". Purely observational; it never affects
// execution.
func (g *Graph) Describe(w io.Writer) {
	fmt.Fprintf(w, "graph: %d depths, %d connections\n", len(g.depths), g.Connections())
	for i, depth := range g.depths {
		fmt.Fprintf(w, "depth %d:\n", i)
		for _, conn := range depth {
			labels := make([]string, len(conn.producers))
			for j, p := range conn.producers {
				labels[j] = p.Label()
			}
			fmt.Fprintf(w, "\t[%s] --%s--> %s\n",
				strings.Join(labels, " "), conn.consumer.Op(), conn.consumer.Label())
		}
	}
}
