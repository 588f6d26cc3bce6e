package circuit

// Layering is the ASAP layering of a circuit's gate list.
type Layering struct {
	// Layers holds the gate indices of each layer, increasing within a layer.
	Layers [][]int
	// Fences holds the barrier indices placed before each layer. It has len(Layers)+1
	// entries; the last one holds barriers that follow every gate on their qubits.
	Fences [][]int
}

// Layering partitions the gate list into ASAP layers.
//
// A gate lands one layer after the deepest layer already occupied on any of its qubits, so
// gates sharing a qubit keep their relative order and every layer touches each qubit at most
// once. Barriers occupy no layer: they raise the frontier of their qubits to the deepest
// among them and are fenced before that layer.
func (c *Circuit) Layering() Layering {
	frontier := make([]int, c.numQubits)
	var (
		layers [][]int
		fences = map[int][]int{}
	)

	for i, g := range c.gates {
		depth := 0
		for _, q := range g.Qubits {
			depth = max(depth, frontier[q])
		}

		if g.Op == OpBarrier {
			for _, q := range g.Qubits {
				frontier[q] = depth
			}
			fences[depth] = append(fences[depth], i)

			continue
		}

		if depth == len(layers) {
			layers = append(layers, nil)
		}
		layers[depth] = append(layers[depth], i)
		for _, q := range g.Qubits {
			frontier[q] = depth + 1
		}
	}

	out := Layering{Layers: layers, Fences: make([][]int, len(layers)+1)}
	for d, idx := range fences {
		out.Fences[d] = idx
	}

	return out
}

// Layers returns the gate indices of each ASAP layer. See Layering.
func (c *Circuit) Layers() [][]int {
	return c.Layering().Layers
}
