package instance

import "github.com/vk/stepmill/internal/def"

// TreeNode is the read-only node hierarchy the visualization collaborator
// consumes: root, then children, recursively, in run order.
type TreeNode struct {
	Name     string
	Path     def.Path
	Children []*TreeNode
}

// SelectionEvent is the visualization collaborator's only outbound contract:
// "the user selected component X". The core defines the shape and does not
// react to it.
type SelectionEvent struct {
	Path def.Path
}

// Tree builds the read-only node hierarchy for the whole instance.
func (m *ModelInstance) Tree() *TreeNode {
	return buildTree(m.root)
}

func buildTree(n Node) *TreeNode {
	t := &TreeNode{Name: n.Name(), Path: n.Path()}
	for _, child := range n.ChildNodes() {
		t.Children = append(t.Children, buildTree(child))
	}
	return t
}
