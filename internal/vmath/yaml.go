package vmath

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalYAML writes a Vec3 as a flow sequence: [x, y, z]
func (a Vec3) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range [3]float64{a.X, a.Y, a.Z} {
		var n yaml.Node
		if err := n.Encode(v); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &n)
	}
	return node, nil
}

// UnmarshalYAML accepts [x, y, z] or {x: .., y: .., z: ..}
func (a *Vec3) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var xs []float64
		if err := value.Decode(&xs); err != nil {
			return err
		}
		if len(xs) != 3 {
			return fmt.Errorf("line %d: vector needs 3 components, got %d", value.Line, len(xs))
		}
		*a = Vec3{xs[0], xs[1], xs[2]}
		return nil
	case yaml.MappingNode:
		var m struct {
			X float64 `yaml:"x"`
			Y float64 `yaml:"y"`
			Z float64 `yaml:"z"`
		}
		if err := value.Decode(&m); err != nil {
			return err
		}
		*a = Vec3{m.X, m.Y, m.Z}
		return nil
	}
	return fmt.Errorf("line %d: cannot decode vector from %s", value.Line, value.Tag)
}

// MarshalYAML writes a Vec2 as [x, y]
func (a Vec2) MarshalYAML() (interface{}, error) {
	return []float64{a.X, a.Y}, nil
}

// UnmarshalYAML accepts [x, y]
func (a *Vec2) UnmarshalYAML(value *yaml.Node) error {
	var xs []float64
	if err := value.Decode(&xs); err != nil {
		return err
	}
	if len(xs) != 2 {
		return fmt.Errorf("line %d: vector needs 2 components, got %d", value.Line, len(xs))
	}
	*a = Vec2{xs[0], xs[1]}
	return nil
}
