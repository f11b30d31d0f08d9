package routegen

import (
	"io"

	"github.com/ddddddO/gtree"
	"github.com/vango-dev/apiroutes/pkg/routetree"
)

// PrintTree writes tree to w as an ASCII tree rooted at rootLabel. Endpoint
// directories are labelled with their path:
//
//	api
//	└── users → /api/users
//	    └── [id] → /api/users/[id]
func PrintTree(w io.Writer, tree *routetree.Node, rootLabel string) error {
	root := gtree.NewRoot(rootLabel)
	addTreeNodes(root, children(tree))
	return gtree.OutputProgrammably(w, root)
}

func addTreeNodes(parent *gtree.Node, nodes []*routetree.Node) {
	for _, node := range nodes {
		addTreeNodes(parent.Add(treeLabel(node)), node.Children)
	}
}

func treeLabel(node *routetree.Node) string {
	label := fieldKey(node.Segment)
	if node.HasPath() {
		label += " → " + routetree.NormalizeSeparators(node.Path)
	}
	return label
}
