package routegen

import (
	"strings"

	"github.com/vango-dev/apiroutes/pkg/routetree"
)

const (
	// Banner is the first line of every generated file.
	Banner = "// Code generated by apiroutes. DO NOT EDIT."

	// DefaultTypeName is the name of the generated interface.
	DefaultTypeName = "ApiRoutes"

	// DefaultConstName is the name of the generated constant.
	DefaultConstName = "apiRoutes"

	// indentUnit matches JSON.stringify(value, null, 2).
	indentUnit = "  "
)

// Generator renders route trees as TypeScript source.
type Generator struct {
	typeName  string
	constName string
	header    string
}

// Option configures a Generator.
type Option func(*Generator)

// WithTypeName sets the interface name.
func WithTypeName(name string) Option {
	return func(g *Generator) {
		if name != "" {
			g.typeName = name
		}
	}
}

// WithConstName sets the constant name.
func WithConstName(name string) Option {
	return func(g *Generator) {
		if name != "" {
			g.constName = name
		}
	}
}

// WithHeader sets text written verbatim after the banner, such as lint
// directives or imports.
func WithHeader(header string) Option {
	return func(g *Generator) {
		g.header = strings.TrimRight(header, "\n")
	}
}

// NewGenerator creates a Generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		typeName:  DefaultTypeName,
		constName: DefaultConstName,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Render returns the complete generated file for tree: banner, optional
// header, interface and constant, ending in a newline.
func (g *Generator) Render(tree *routetree.Node) string {
	var b strings.Builder

	b.WriteString(Banner)
	b.WriteString("\n")
	if g.header != "" {
		b.WriteString(g.header)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(g.RenderInterface(tree))
	b.WriteString("\n\n")
	b.WriteString(g.RenderConst(tree))
	b.WriteString("\n")

	return b.String()
}

// RenderInterface returns the interface declaration for tree.
func (g *Generator) RenderInterface(tree *routetree.Node) string {
	var b strings.Builder
	b.WriteString("export interface ")
	b.WriteString(g.typeName)
	b.WriteString(" ")
	writeRoutesType(&b, children(tree), "")
	return b.String()
}

// RenderConst returns the constant declaration for tree.
func (g *Generator) RenderConst(tree *routetree.Node) string {
	var b strings.Builder
	b.WriteString("export const ")
	b.WriteString(g.constName)
	b.WriteString(": ")
	b.WriteString(g.typeName)
	b.WriteString(" = ")
	b.WriteString(RenderValue(tree))
	b.WriteString(";")
	return b.String()
}

// RenderValue returns the tree contents as indented JSON, keys in tree
// order.
func RenderValue(tree *routetree.Node) string {
	var b strings.Builder
	writeRoutesValue(&b, children(tree), "")
	return b.String()
}

func children(tree *routetree.Node) []*routetree.Node {
	if tree == nil {
		return nil
	}
	return tree.Children
}

// fieldKey is the property name used for a segment in both the interface and
// the constant.
func fieldKey(segment string) string {
	return routetree.NormalizeSeparators(segment)
}

func writeRoutesType(b *strings.Builder, nodes []*routetree.Node, indent string) {
	if len(nodes) == 0 {
		b.WriteString("{}")
		return
	}
	inner := indent + indentUnit

	b.WriteString("{\n")
	for _, node := range nodes {
		b.WriteString(inner)
		b.WriteString(FieldName(fieldKey(node.Segment)))
		b.WriteString(": ")
		writeNodeType(b, node, inner)
		b.WriteString(";\n")
	}
	b.WriteString(indent)
	b.WriteString("}")
}

func writeNodeType(b *strings.Builder, node *routetree.Node, indent string) {
	inner := indent + indentUnit

	b.WriteString("{\n")
	if node.HasPath() {
		b.WriteString(inner)
		b.WriteString("path: string;\n")
	}
	if len(node.Children) > 0 {
		b.WriteString(inner)
		b.WriteString("routes: ")
		writeRoutesType(b, node.Children, inner)
		b.WriteString(";\n")
	}
	b.WriteString(indent)
	b.WriteString("}")
}

func writeRoutesValue(b *strings.Builder, nodes []*routetree.Node, indent string) {
	if len(nodes) == 0 {
		b.WriteString("{}")
		return
	}
	inner := indent + indentUnit

	b.WriteString("{\n")
	for i, node := range nodes {
		b.WriteString(inner)
		b.WriteString(Quote(fieldKey(node.Segment)))
		b.WriteString(": ")
		writeNodeValue(b, node, inner)
		if i < len(nodes)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(indent)
	b.WriteString("}")
}

func writeNodeValue(b *strings.Builder, node *routetree.Node, indent string) {
	inner := indent + indentUnit

	b.WriteString("{\n")
	if node.HasPath() {
		b.WriteString(inner)
		b.WriteString(`"path": `)
		b.WriteString(Quote(routetree.NormalizeSeparators(node.Path)))
		if len(node.Children) > 0 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	if len(node.Children) > 0 {
		b.WriteString(inner)
		b.WriteString(`"routes": `)
		writeRoutesValue(b, node.Children, inner)
		b.WriteString("\n")
	}
	b.WriteString(indent)
	b.WriteString("}")
}
