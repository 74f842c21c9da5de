/*
Package dot renders classification trees as graphviz graphs.
*/
package dot

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ariaghora/libdtree/tree"
	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
)

// Formats maps the file extensions accepted by RenderFile to the
// graphviz format rendered for them.
var Formats = map[string]graphviz.Format{
	"png": graphviz.PNG,
	"svg": graphviz.SVG,
	"jpg": graphviz.JPG,
	"dot": graphviz.XDOT,
}

/*
Graph takes a tree and builds its graphviz graph: every inner node is
labeled with its routing rule and the information gain of its split,
every leaf is drawn as a box labeled with the class it predicts, and
edges connect inner nodes to their two children, the left child taking
the samples that satisfy the rule.

Both returned values must be closed by the caller when no longer
needed.
*/
func Graph(t *tree.Tree) (*graphviz.Graphviz, *cgraph.Graph, error) {
	if t == nil || t.Root == nil {
		return nil, nil, fmt.Errorf("tree has no root node")
	}
	gv := graphviz.New()
	graph, err := gv.Graph()
	if err != nil {
		gv.Close()
		return nil, nil, fmt.Errorf("building graph: %v", err)
	}
	err = drawNode(graph, t.Root, nil, "n")
	if err != nil {
		graph.Close()
		gv.Close()
		return nil, nil, fmt.Errorf("building graph: %v", err)
	}
	return gv, graph, nil
}

/*
Render takes a tree, a graphviz format and an io.Writer and writes the
tree rendered in that format onto the io.Writer.
*/
func Render(t *tree.Tree, format graphviz.Format, w io.Writer) error {
	gv, graph, err := Graph(t)
	if err != nil {
		return err
	}
	defer func() {
		graph.Close()
		gv.Close()
	}()
	err = gv.Render(graph, format, w)
	if err != nil {
		return fmt.Errorf("rendering tree: %v", err)
	}
	return nil
}

/*
RenderFile takes a tree and a filepath and renders the tree onto the
file at that path, deriving the format from the path extension.
Supported extensions are png, svg, jpg and dot.
*/
func RenderFile(t *tree.Tree, path string) error {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	format, ok := Formats[ext]
	if !ok {
		return fmt.Errorf("unsupported render format %q", ext)
	}
	gv, graph, err := Graph(t)
	if err != nil {
		return err
	}
	defer func() {
		graph.Close()
		gv.Close()
	}()
	err = gv.RenderFilename(graph, format, path)
	if err != nil {
		return fmt.Errorf("rendering tree to %s: %v", path, err)
	}
	return nil
}

// drawNode adds the subtree rooted at n to the graph under the given
// name, hanging it from parent unless parent is nil. Children get the
// parent name suffixed with l or r, so node names encode their path
// from the root.
func drawNode(g *cgraph.Graph, n *tree.Node, parent *cgraph.Node, name string) error {
	current, err := g.CreateNode(name)
	if err != nil {
		return err
	}
	if parent != nil {
		_, err = g.CreateEdge("", parent, current)
		if err != nil {
			return err
		}
	}
	if n.Leaf {
		current.Set("label", fmt.Sprintf("%g", n.Value))
		current.Set("shape", "box")
		return nil
	}
	current.Set("label", fmt.Sprintf("x%d <= %g\ngain %.4f", n.Feature, n.Threshold, n.Gain))
	err = drawNode(g, n.Left, current, name+"l")
	if err != nil {
		return err
	}
	return drawNode(g, n.Right, current, name+"r")
}
