package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rodyo/constrec"
)

// LoadFields reads a YAML mapping and returns its entries in document
// order. Decoding into a Go map would lose that order, so the yaml.Node
// tree is walked directly. Nested mappings become *constrec.Struct so the
// record renders them as nested structures.
func LoadFields(path string) ([]constrec.Field, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "reading field file", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, WrapExitError(ExitCommandError, "parsing field file", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("field file %s is empty", path))
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("field file %s must be a YAML mapping", path))
	}

	fields := make([]constrec.Field, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		var name string
		if err := root.Content[i].Decode(&name); err != nil {
			return nil, WrapExitError(ExitCommandError, "decoding field name", err)
		}
		value, err := decodeValue(root.Content[i+1])
		if err != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("decoding field %q", name), err)
		}
		fields = append(fields, constrec.F(name, value))
	}
	return fields, nil
}

// decodeValue converts a YAML node into a record value, keeping mapping
// order by building *constrec.Struct values instead of Go maps.
func decodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.MappingNode:
		s := constrec.NewStruct()
		for i := 0; i+1 < len(n.Content); i += 2 {
			var name string
			if err := n.Content[i].Decode(&name); err != nil {
				return nil, err
			}
			v, err := decodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			s.Set(name, v)
		}
		return s, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := decodeValue(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.AliasNode:
		return decodeValue(n.Alias)
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}
