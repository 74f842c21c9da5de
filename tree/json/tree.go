/*
Package json provides serialization of classification trees to and
from a JSON representation.
*/
package json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ariaghora/libdtree/tree"
)

// Version is the version of the JSON tree representation written by
// this package.
const Version = 1

type jsonTree struct {
	Version   int        `json:"version"`
	NFeatures int        `json:"nFeatures"`
	Root      *tree.Node `json:"root"`
}

/*
WriteJSONTree takes a pointer to a tree.Tree and an io.Writer and
serializes the given tree as JSON onto the io.Writer.
A tree is serialized as a JSON object with the following fields:
* "version": the version of the representation, currently 1
* "nFeatures": the number of features the tree was grown on
* "root": the root node of the tree, with the nodes below it nested
  under the "left" and "right" fields of their parents.
An error is returned if the tree has no root node or cannot be written
onto the io.Writer.
*/
func WriteJSONTree(t *tree.Tree, w io.Writer) error {
	if t == nil || t.Root == nil {
		return fmt.Errorf("tree has no root node")
	}
	jt := &jsonTree{Version: Version, NFeatures: t.NFeatures, Root: t.Root}
	err := json.NewEncoder(w).Encode(jt)
	if err != nil {
		return fmt.Errorf("encoding json tree: %v", err)
	}
	return nil
}

/*
ReadJSONTree takes an io.Reader with the JSON representation of a tree
as written by WriteJSONTree and returns the deserialized tree.
An error is returned if the JSON cannot be read from the io.Reader,
declares a version this package does not support, or describes a tree
without a root node or grown on less than one feature.
*/
func ReadJSONTree(r io.Reader) (*tree.Tree, error) {
	jt := &jsonTree{}
	err := json.NewDecoder(r).Decode(jt)
	if err != nil {
		return nil, fmt.Errorf("decoding json tree: %v", err)
	}
	if jt.Version != Version {
		return nil, fmt.Errorf("unsupported json tree version %d", jt.Version)
	}
	if jt.Root == nil {
		return nil, fmt.Errorf("no root node available")
	}
	if jt.NFeatures < 1 {
		return nil, fmt.Errorf("invalid number of features %d", jt.NFeatures)
	}
	return tree.New(jt.Root, jt.NFeatures), nil
}

/*
Codec encodes trees to their JSON representation and decodes them back,
so that trees can be kept in stores that persist raw bytes.
*/
type Codec struct{}

// Encode returns the JSON representation of the given tree.
func (Codec) Encode(t *tree.Tree) ([]byte, error) {
	var buf bytes.Buffer
	err := WriteJSONTree(t, &buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses the JSON representation in data and returns the tree
// it describes.
func (Codec) Decode(data []byte) (*tree.Tree, error) {
	return ReadJSONTree(bytes.NewReader(data))
}
