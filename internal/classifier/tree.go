package classifier

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"sort"
)

// TreeConfig holds configuration for a decision tree.
type TreeConfig struct {
	MaxDepth        int
	MinSamplesSplit int
	MaxFeatures     int
	Seed            int64
}

// Node is one node of a fitted tree. Nodes are stored flat; Left and Right
// index into the same slice. Rows with x[Feature] <= Threshold go left.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Class     int     `json:"class"`
	Leaf      bool    `json:"leaf"`
}

// DecisionTree is a CART classifier splitting on gini impurity.
type DecisionTree struct {
	config TreeConfig

	nodes      []Node
	features   int
	classes    int
	rng        *rand.Rand
	candidates []int
}

type treeState struct {
	Config   TreeConfig `json:"config"`
	Features int        `json:"features"`
	Classes  int        `json:"classes"`
	Nodes    []Node     `json:"nodes"`
}

// NewDecisionTree creates a new decision tree.
func NewDecisionTree(cfg TreeConfig) *DecisionTree {
	if cfg.MinSamplesSplit < 2 {
		cfg.MinSamplesSplit = 2
	}
	return &DecisionTree{config: cfg}
}

// Name returns the model name.
func (t *DecisionTree) Name() string {
	return string(ModelTypeDecisionTree)
}

// Fit grows the tree on all rows.
func (t *DecisionTree) Fit(X [][]float64, y []int) error {
	features, classes, err := checkTrainingSet(X, y)
	if err != nil {
		return err
	}
	idx := make([]int, len(X))
	for i := range idx {
		idx[i] = i
	}
	t.grow(X, y, idx, features, classes)
	return nil
}

// grow fits the tree on the rows selected by idx. idx may contain repeats.
func (t *DecisionTree) grow(X [][]float64, y []int, idx []int, features, classes int) {
	t.features = features
	t.classes = classes
	t.nodes = t.nodes[:0]
	t.rng = rand.New(rand.NewSource(t.config.Seed))
	t.candidates = make([]int, features)
	for i := range t.candidates {
		t.candidates[i] = i
	}
	t.build(X, y, idx, 0)
	t.rng = nil
	t.candidates = nil
}

// build appends the subtree for idx and returns its root index.
func (t *DecisionTree) build(X [][]float64, y []int, idx []int, depth int) int {
	counts := make([]int, t.classes)
	for _, i := range idx {
		counts[y[i]]++
	}

	self := len(t.nodes)
	t.nodes = append(t.nodes, Node{Feature: -1, Left: -1, Right: -1, Class: majority(counts), Leaf: true})

	if counts[t.nodes[self].Class] == len(idx) ||
		len(idx) < t.config.MinSamplesSplit ||
		(t.config.MaxDepth > 0 && depth >= t.config.MaxDepth) {
		return self
	}

	feature, threshold, ok := t.bestSplit(X, y, idx, counts)
	if !ok {
		return self
	}

	var left, right []int
	for _, i := range idx {
		if X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	l := t.build(X, y, left, depth+1)
	r := t.build(X, y, right, depth+1)

	node := &t.nodes[self]
	node.Feature = feature
	node.Threshold = threshold
	node.Left = l
	node.Right = r
	node.Leaf = false
	return self
}

// bestSplit finds the feature and midpoint threshold with the lowest weighted
// gini impurity among MaxFeatures randomly drawn features. ok is false when
// every feature is constant over idx.
func (t *DecisionTree) bestSplit(X [][]float64, y []int, idx []int, counts []int) (feature int, threshold float64, ok bool) {
	n := len(idx)
	best := gini(counts, n)

	sorted := make([]int, n)
	left := make([]int, t.classes)
	right := make([]int, t.classes)

	limit := t.features
	if k := t.config.MaxFeatures; k > 0 && k < t.features {
		limit = k
		t.rng.Shuffle(len(t.candidates), func(i, j int) {
			t.candidates[i], t.candidates[j] = t.candidates[j], t.candidates[i]
		})
	}

	// Features past the limit are only tried while no valid split was found.
	for tried, f := range t.candidates {
		if tried >= limit && ok {
			break
		}

		copy(sorted, idx)
		sort.SliceStable(sorted, func(a, b int) bool {
			return X[sorted[a]][f] < X[sorted[b]][f]
		})

		for c := range left {
			left[c] = 0
			right[c] = counts[c]
		}

		for k := 0; k < n-1; k++ {
			cls := y[sorted[k]]
			left[cls]++
			right[cls]--

			lo, hi := X[sorted[k]][f], X[sorted[k+1]][f]
			if lo == hi {
				continue
			}

			nl, nr := k+1, n-k-1
			impurity := (float64(nl)*gini(left, nl) + float64(nr)*gini(right, nr)) / float64(n)
			if !ok || impurity < best {
				best = impurity
				feature = f
				threshold = lo + (hi-lo)/2
				if threshold >= hi {
					threshold = lo
				}
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

func gini(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range counts {
		p := float64(c) / float64(n)
		sum += p * p
	}
	return 1 - sum
}

// Predict returns the class of every row.
func (t *DecisionTree) Predict(X [][]float64) ([]int, error) {
	if len(t.nodes) == 0 {
		return nil, ErrNotFitted
	}
	if err := checkRows(X, t.features); err != nil {
		return nil, err
	}
	out := make([]int, len(X))
	for i, row := range X {
		out[i] = t.predictRow(row)
	}
	return out, nil
}

func (t *DecisionTree) predictRow(row []float64) int {
	i := 0
	for !t.nodes[i].Leaf {
		if row[t.nodes[i].Feature] <= t.nodes[i].Threshold {
			i = t.nodes[i].Left
		} else {
			i = t.nodes[i].Right
		}
	}
	return t.nodes[i].Class
}

// Depth returns the depth of the fitted tree. A single leaf has depth 0.
func (t *DecisionTree) Depth() int {
	if len(t.nodes) == 0 {
		return 0
	}
	var walk func(i int) int
	walk = func(i int) int {
		n := t.nodes[i]
		if n.Leaf {
			return 0
		}
		return 1 + max(walk(n.Left), walk(n.Right))
	}
	return walk(0)
}

// Save serializes the tree to a writer.
func (t *DecisionTree) Save(w io.Writer) error {
	return json.NewEncoder(w).Encode(t.state())
}

func (t *DecisionTree) state() treeState {
	return treeState{
		Config:   t.config,
		Features: t.features,
		Classes:  t.classes,
		Nodes:    t.nodes,
	}
}

// Load deserializes the tree from a reader.
func (t *DecisionTree) Load(r io.Reader) error {
	var state treeState
	if err := json.NewDecoder(r).Decode(&state); err != nil {
		return err
	}
	return t.restore(state)
}

func (t *DecisionTree) restore(state treeState) error {
	if err := validateNodes(state.Nodes, state.Features, state.Classes); err != nil {
		return err
	}
	t.config = state.Config
	t.features = state.Features
	t.classes = state.Classes
	t.nodes = state.Nodes
	return nil
}

func validateNodes(nodes []Node, features, classes int) error {
	if len(nodes) == 0 {
		return fmt.Errorf("tree has no nodes")
	}
	for i, n := range nodes {
		if n.Class < 0 || n.Class >= classes {
			return fmt.Errorf("node %d: class %d out of range", i, n.Class)
		}
		if n.Leaf {
			continue
		}
		if n.Feature < 0 || n.Feature >= features {
			return fmt.Errorf("node %d: feature %d out of range", i, n.Feature)
		}
		// children always come after their parent
		if n.Left <= i || n.Left >= len(nodes) || n.Right <= i || n.Right >= len(nodes) {
			return fmt.Errorf("node %d: invalid children", i)
		}
	}
	return nil
}
