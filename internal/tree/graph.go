package tree

// graph.go — input resolution and cycle rejection.
//
// After parsing, every gate input id must resolve to a declared event or
// gate, and the gate-to-gate subgraph must be acyclic. The cycle search is a
// three-colour depth-first traversal with sorted start nodes and sorted
// neighbours, so the reported cycle is the same for any declaration order.

import (
	"fmt"
	"sort"
	"strings"
)

// validate resolves gate inputs, marks top gates, and rejects cycles.
func (ft *FaultTree) validate() *Error {
	usedAsInput := make(map[string]bool)
	for _, gate := range ft.Gates {
		for _, id := range gate.InputIDs {
			if _, ok := ft.EventByID[id]; ok {
				usedAsInput[id] = true
				continue
			}
			if _, ok := ft.GateByID[id]; ok {
				usedAsInput[id] = true
				continue
			}
			return errf(KindReference, gate.InputsLine,
				"no Event or Gate declared with id `%s` among inputs for Gate `%s`", id, gate.ID)
		}
	}
	for _, event := range ft.Events {
		event.IsUsed = usedAsInput[event.ID]
	}
	for _, gate := range ft.Gates {
		gate.IsTop = !usedAsInput[gate.ID]
	}

	adjacency := make(map[string][]string, len(ft.Gates))
	for _, gate := range ft.Gates {
		var neighbours []string
		for _, id := range gate.InputIDs {
			if _, ok := ft.GateByID[id]; ok {
				neighbours = append(neighbours, id)
			}
		}
		sort.Strings(neighbours)
		adjacency[gate.ID] = neighbours
	}

	cycles := findCycles(adjacency)
	if len(cycles) == 0 {
		return nil
	}

	cycle := smallestCycle(cycles)
	edges := make([]string, len(cycle))
	for i, id := range cycle {
		next := cycle[(i+1)%len(cycle)]
		edges[i] = ft.GateByID[id].edgeDescription(next)
	}
	return errf(KindStructural, 0,
		"gate inputs form a cycle: %s", strings.Join(edges, "; "))
}

func (g *Gate) edgeDescription(input string) string {
	return fmt.Sprintf("Gate `%s` has input `%s` (line %d)", g.ID, input, g.InputsLine)
}

// findCycles returns every cycle reachable in the directed graph, one per
// back edge encountered. Nodes are visited in sorted order, so the result is
// deterministic. Each cycle is listed from its first infected node.
func findCycles(adjacency map[string][]string) [][]string {
	const (
		clean = iota
		infected
		dead
	)
	colour := make(map[string]int, len(adjacency))
	nodes := make([]string, 0, len(adjacency))
	for node := range adjacency {
		nodes = append(nodes, node)
	}
	sort.Strings(nodes)

	type frame struct {
		node string
		next int
	}
	var cycles [][]string
	for _, start := range nodes {
		if colour[start] != clean {
			continue
		}
		colour[start] = infected
		stack := []frame{{node: start}}
		chain := []string{start}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			neighbours := adjacency[top.node]
			if top.next < len(neighbours) {
				node := neighbours[top.next]
				top.next++
				switch colour[node] {
				case clean:
					colour[node] = infected
					stack = append(stack, frame{node: node})
					chain = append(chain, node)
				case infected:
					for i, c := range chain {
						if c == node {
							cycles = append(cycles, append([]string(nil), chain[i:]...))
							break
						}
					}
				}
				continue
			}
			colour[top.node] = dead
			stack = stack[:len(stack)-1]
			chain = chain[:len(chain)-1]
		}
	}
	return cycles
}

// smallestCycle canonicalises each cycle by rotating its smallest node to the
// front, then picks the lexicographically smallest one.
func smallestCycle(cycles [][]string) []string {
	best := []string(nil)
	for _, cycle := range cycles {
		rotated := rotateToSmallest(cycle)
		if best == nil || lessStrings(rotated, best) {
			best = rotated
		}
	}
	return best
}

func rotateToSmallest(cycle []string) []string {
	at := 0
	for i, node := range cycle {
		if node < cycle[at] {
			at = i
		}
	}
	rotated := make([]string, 0, len(cycle))
	rotated = append(rotated, cycle[at:]...)
	rotated = append(rotated, cycle[:at]...)
	return rotated
}

func lessStrings(a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
