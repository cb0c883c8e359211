package bag

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"docnote/internal/value"
)

// MarshalYAML renders the map as an ordered YAML mapping.
func (m *Map) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for k, v := range m.All() {
		vn, err := valueNode(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", k, err)
		}

		node.Content = append(node.Content, scalarNode("!!str", k), vn)
	}

	return node, nil
}

func valueNode(v value.Value) (*yaml.Node, error) {
	switch v.Kind() {
	case value.KindNull:
		return scalarNode("!!null", "null"), nil
	case value.KindBool:
		b, _ := v.AsBool()
		return scalarNode("!!bool", strconv.FormatBool(b)), nil
	case value.KindInt:
		i, _ := v.AsInt()
		return scalarNode("!!int", strconv.FormatInt(i, 10)), nil
	case value.KindFloat:
		f, _ := v.AsFloat()
		return scalarNode("!!float", strconv.FormatFloat(f, 'g', -1, 64)), nil
	case value.KindString:
		s, _ := v.AsString()
		return scalarNode("!!str", s), nil
	case value.KindJSON:
		n, _ := v.AsJSON()
		return jsonNode(n), nil
	case value.KindConstructed:
		_, obj, _ := v.AsConstructed()
		node := &yaml.Node{}
		if err := node.Encode(obj); err != nil {
			return nil, err
		}

		return node, nil
	case value.KindList:
		items, _ := v.AsList()
		node := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range items {
			in, err := valueNode(item)
			if err != nil {
				return nil, err
			}

			node.Content = append(node.Content, in)
		}

		return node, nil
	default:
		return nil, fmt.Errorf("cannot encode value of kind %s", v.Kind())
	}
}

func jsonNode(n *value.Node) *yaml.Node {
	switch n.Kind {
	case value.NodeBool:
		return scalarNode("!!bool", strconv.FormatBool(n.Bool))
	case value.NodeNumber:
		if _, err := n.Number.Int64(); err == nil {
			return scalarNode("!!int", n.Number.String())
		}

		return scalarNode("!!float", n.Number.String())
	case value.NodeString:
		return scalarNode("!!str", n.Str)
	case value.NodeArray:
		node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, e := range n.Elems {
			node.Content = append(node.Content, jsonNode(e))
		}

		return node
	case value.NodeObject:
		node := &yaml.Node{Kind: yaml.MappingNode}
		for _, f := range n.Fields {
			node.Content = append(node.Content, scalarNode("!!str", f.Key), jsonNode(f.Value))
		}

		return node
	default:
		return scalarNode("!!null", "null")
	}
}

func scalarNode(tag, val string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: val}
}
