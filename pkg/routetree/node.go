package routetree

// Node is a directory in the route tree.
//
// Path and Children are independent: a directory can be an endpoint, contain
// endpoints, or both. The root node never has a Path.
type Node struct {
	// Segment is the directory name. Empty for the root.
	Segment string

	// Path is the URL path (e.g., "/api/users/[id]") when the directory
	// contains a marker file.
	Path string

	// Children are the non-empty subdirectories in scan order.
	Children []*Node
}

// HasPath reports whether the directory is an endpoint.
func (n *Node) HasPath() bool {
	return n != nil && n.Path != ""
}

// IsEmpty reports whether the node carries neither a path nor children.
func (n *Node) IsEmpty() bool {
	return n == nil || (n.Path == "" && len(n.Children) == 0)
}

// Child returns the direct child with the given segment, or nil.
func (n *Node) Child(segment string) *Node {
	if n == nil {
		return nil
	}
	for _, child := range n.Children {
		if child.Segment == segment {
			return child
		}
	}
	return nil
}

// Lookup follows segments from n and returns the node found, or nil.
func (n *Node) Lookup(segments ...string) *Node {
	current := n
	for _, segment := range segments {
		current = current.Child(segment)
		if current == nil {
			return nil
		}
	}
	return current
}

// Endpoints returns every path in the tree in depth-first pre-order.
func (n *Node) Endpoints() []string {
	var paths []string
	_ = n.Walk(func(_ []string, node *Node) error {
		if node.HasPath() {
			paths = append(paths, node.Path)
		}
		return nil
	})
	return paths
}

// WalkFunc is called for each node visited by Walk. segments holds the
// directory names from the root to the node; it is empty for the root and
// must not be retained.
type WalkFunc func(segments []string, n *Node) error

// Walk visits n and its descendants depth-first, parents before children.
// It stops at the first error returned by fn.
func (n *Node) Walk(fn WalkFunc) error {
	if n == nil {
		return nil
	}
	return n.walk(nil, fn)
}

func (n *Node) walk(segments []string, fn WalkFunc) error {
	if err := fn(segments, n); err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := child.walk(append(segments, child.Segment), fn); err != nil {
			return err
		}
	}
	return nil
}
