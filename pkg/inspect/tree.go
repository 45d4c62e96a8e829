package inspect

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/zoeyai/zoeyuia/pkg/uia"
)

// Node 元素树节点
type Node struct {
	ElementSummary `yaml:",inline"`
	Children       []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// Count 返回子树中的节点数
func (n *Node) Count() int {
	if n == nil {
		return 0
	}
	count := 1
	for _, c := range n.Children {
		count += c.Count()
	}
	return count
}

// BuildTree 构建元素树，maxDepth <= 0 时使用 DefaultMaxDepth
// 与 GetElements 不同，树中保留所有元素
func BuildTree(root *uia.ElementInfo, maxDepth int, includeText bool) (*Node, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: 根元素为空", uia.ErrInvalidArgument)
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	var errs *multierror.Error
	tree := buildNode(root, 0, maxDepth, includeText, &errs)
	return tree, errs.ErrorOrNil()
}

func buildNode(e *uia.ElementInfo, depth, maxDepth int, includeText bool, errs **multierror.Error) *Node {
	s, err := Summarize(e, includeText)
	s.Depth = depth
	if err != nil {
		*errs = multierror.Append(*errs, fmt.Errorf("%s: %w", e, err))
	}

	node := &Node{ElementSummary: s}
	if depth >= maxDepth {
		return node
	}

	children, err := e.Children()
	if err != nil {
		*errs = multierror.Append(*errs, fmt.Errorf("%s 子元素: %w", e, err))
		return node
	}
	for _, child := range children {
		node.Children = append(node.Children, buildNode(child, depth+1, maxDepth, includeText, errs))
	}
	return node
}
