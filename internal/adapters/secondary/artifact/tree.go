package artifact

import (
	"fmt"
	"math"
)

const leafChild = -1

type nodeParams struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value,omitempty"`
}

type treeParams struct {
	Nodes []nodeParams `json:"nodes"`
}

type treeNode struct {
	feature   int
	threshold float64
	left      int
	right     int
	isLeaf    bool
	probs     [2]float64
}

// DecisionTree routes a row left when row[feature] <= threshold and right
// otherwise, until it reaches a leaf holding class weights.
type DecisionTree struct {
	nFeatures int
	nodes     []treeNode
}

func newDecisionTree(nFeatures int, p treeParams) (*DecisionTree, error) {
	if len(p.Nodes) == 0 {
		return nil, corrupt("tree has no nodes")
	}

	nodes := make([]treeNode, len(p.Nodes))
	for i, n := range p.Nodes {
		if n.Left == leafChild && n.Right == leafChild {
			probs, err := leafProbabilities(i, n.Value)
			if err != nil {
				return nil, err
			}
			nodes[i] = treeNode{isLeaf: true, probs: probs}
			continue
		}
		if n.Feature < 0 || n.Feature >= nFeatures {
			return nil, corrupt("node %d splits on feature %d, expected [0, %d)", i, n.Feature, nFeatures)
		}
		if !validChild(n.Left, i, len(p.Nodes)) || !validChild(n.Right, i, len(p.Nodes)) {
			return nil, corrupt("node %d has invalid children %d/%d", i, n.Left, n.Right)
		}
		if math.IsNaN(n.Threshold) {
			return nil, corrupt("node %d threshold is NaN", i)
		}
		nodes[i] = treeNode{
			feature:   n.Feature,
			threshold: n.Threshold,
			left:      n.Left,
			right:     n.Right,
		}
	}

	if err := checkAcyclic(nodes); err != nil {
		return nil, err
	}

	return &DecisionTree{nFeatures: nFeatures, nodes: nodes}, nil
}

func validChild(child, parent, n int) bool {
	return child >= 0 && child < n && child != parent
}

func leafProbabilities(idx int, value []float64) ([2]float64, error) {
	var probs [2]float64
	if len(value) != 2 {
		return probs, corrupt("leaf %d has %d class weights, expected 2", idx, len(value))
	}
	total := 0.0
	for _, v := range value {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return probs, corrupt("leaf %d has invalid class weight %v", idx, v)
		}
		total += v
	}
	if total == 0 {
		return probs, corrupt("leaf %d has no class weight", idx)
	}
	probs[0] = value[0] / total
	probs[1] = value[1] / total
	return probs, nil
}

// checkAcyclic walks from the root and fails if any node is reached twice.
func checkAcyclic(nodes []treeNode) error {
	visited := make([]bool, len(nodes))
	stack := []int{0}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[idx] {
			return corrupt("node %d is reachable twice", idx)
		}
		visited[idx] = true
		if !nodes[idx].isLeaf {
			stack = append(stack, nodes[idx].left, nodes[idx].right)
		}
	}
	return nil
}

func (t *DecisionTree) Kind() string { return KindDecisionTree }

func (t *DecisionTree) Classify(batch [][]float64) ([]int, error) {
	probs, err := t.EstimateProbabilities(batch)
	if err != nil {
		return nil, err
	}
	return classify(probs), nil
}

func (t *DecisionTree) EstimateProbabilities(batch [][]float64) ([][]float64, error) {
	if err := checkBatch(batch, t.nFeatures); err != nil {
		return nil, err
	}
	out := make([][]float64, len(batch))
	for i, row := range batch {
		leaf := t.leaf(row)
		out[i] = []float64{leaf.probs[0], leaf.probs[1]}
	}
	return out, nil
}

func (t *DecisionTree) leaf(row []float64) *treeNode {
	node := &t.nodes[0]
	for !node.isLeaf {
		if row[node.feature] <= node.threshold {
			node = &t.nodes[node.left]
		} else {
			node = &t.nodes[node.right]
		}
	}
	return node
}

// RandomForest averages the class probabilities of its trees.
type RandomForest struct {
	nFeatures int
	trees     []*DecisionTree
}

func newRandomForest(nFeatures int, params []treeParams) (*RandomForest, error) {
	if len(params) == 0 {
		return nil, corrupt("random forest has no trees")
	}
	trees := make([]*DecisionTree, 0, len(params))
	for i, p := range params {
		tree, err := newDecisionTree(nFeatures, p)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		trees = append(trees, tree)
	}
	return &RandomForest{nFeatures: nFeatures, trees: trees}, nil
}

func (f *RandomForest) Kind() string { return KindRandomForest }

func (f *RandomForest) Classify(batch [][]float64) ([]int, error) {
	probs, err := f.EstimateProbabilities(batch)
	if err != nil {
		return nil, err
	}
	return classify(probs), nil
}

func (f *RandomForest) EstimateProbabilities(batch [][]float64) ([][]float64, error) {
	if err := checkBatch(batch, f.nFeatures); err != nil {
		return nil, err
	}
	n := float64(len(f.trees))
	out := make([][]float64, len(batch))
	for i, row := range batch {
		var sum [2]float64
		for _, tree := range f.trees {
			leaf := tree.leaf(row)
			sum[0] += leaf.probs[0]
			sum[1] += leaf.probs[1]
		}
		out[i] = []float64{sum[0] / n, sum[1] / n}
	}
	return out, nil
}

func classify(probs [][]float64) []int {
	classes := make([]int, len(probs))
	for i, p := range probs {
		classes[i] = argmax(p)
	}
	return classes
}
