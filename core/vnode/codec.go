package vnode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidDescription is returned when a document cannot be turned into
// a description tree.
var ErrInvalidDescription = errors.New("invalid node description")

// Document is the wire form of a description. A node without a tag is a
// text leaf; a bare string in a children list is shorthand for one.
type Document struct {
	Tag      string     `json:"tag,omitempty" yaml:"tag,omitempty"`
	Key      string     `json:"key,omitempty" yaml:"key,omitempty"`
	Text     string     `json:"text,omitempty" yaml:"text,omitempty"`
	Flag     string     `json:"flag,omitempty" yaml:"flag,omitempty"`
	Children []Document `json:"children,omitempty" yaml:"children,omitempty"`
	Deltas   []DeltaDoc `json:"deltas,omitempty" yaml:"deltas,omitempty"`
	// HasDeltas marks an explicitly present, possibly empty patch list.
	HasDeltas bool `json:"-" yaml:"-"`
}

// DeltaDoc is the wire form of a Delta.
type DeltaDoc struct {
	Op  string `json:"op" yaml:"op"`
	Pos int    `json:"pos" yaml:"pos"`
}

// Scenario pairs a previous and next tree under a name.
type Scenario struct {
	Name string    `json:"name" yaml:"name"`
	Prev *Document `json:"prev" yaml:"prev"`
	Next *Document `json:"next" yaml:"next"`
}

type documentAlias Document

// UnmarshalJSON accepts either an object or a bare string.
func (d *Document) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*d = Document{Text: s}
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return err
	}
	var a documentAlias
	if err := json.Unmarshal(trimmed, &a); err != nil {
		return err
	}
	*d = Document(a)
	_, d.HasDeltas = raw["deltas"]
	return nil
}

// UnmarshalYAML accepts either a mapping or a bare scalar.
func (d *Document) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*d = Document{Text: value.Value}
		return nil
	}
	var a documentAlias
	if err := value.Decode(&a); err != nil {
		return err
	}
	*d = Document(a)
	if value.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(value.Content); i += 2 {
			if value.Content[i].Value == "deltas" {
				d.HasDeltas = true
			}
		}
	}
	return nil
}

// ParseFlag maps a wire flag name to a Flag.
func ParseFlag(s string) (Flag, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return FlagDefault, nil
	case "no_children":
		return FlagNoChildren, nil
	case "keyed_children", "keyed":
		return FlagKeyedChildren, nil
	case "text_children", "text":
		return FlagTextChildren, nil
	default:
		return FlagDefault, fmt.Errorf("%w: unknown flag %q", ErrInvalidDescription, s)
	}
}

// ParseOp maps a wire op name to an Op.
func ParseOp(s string) (Op, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "create":
		return OpCreate, nil
	case "update":
		return OpUpdate, nil
	case "remove":
		return OpRemove, nil
	default:
		return OpCreate, fmt.Errorf("%w: unknown delta op %q", ErrInvalidDescription, s)
	}
}

// Build converts a wire document into a description tree.
func (d *Document) Build() (*Node, error) {
	if d == nil {
		return nil, nil
	}
	if d.Tag == "" {
		if len(d.Children) > 0 {
			return nil, fmt.Errorf("%w: text leaf %q cannot have children", ErrInvalidDescription, d.Text)
		}
		return &Node{Kind: KindText, Key: d.Key, Text: d.Text}, nil
	}

	flag, err := ParseFlag(d.Flag)
	if err != nil {
		return nil, err
	}

	n := &Node{
		Kind: KindElement,
		Tag:  d.Tag,
		Key:  d.Key,
		Text: d.Text,
		Flag: flag,
	}
	if d.Children != nil {
		n.Children = make([]*Node, 0, len(d.Children))
	}
	for i := range d.Children {
		child, err := d.Children[i].Build()
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", d.Tag, i, err)
		}
		n.Children = append(n.Children, child)
	}
	if d.HasDeltas || len(d.Deltas) > 0 {
		n.Deltas = make([]Delta, 0, len(d.Deltas))
		for _, ds := range d.Deltas {
			op, err := ParseOp(ds.Op)
			if err != nil {
				return nil, err
			}
			if ds.Pos < 0 {
				return nil, fmt.Errorf("%w: negative delta position %d", ErrInvalidDescription, ds.Pos)
			}
			n.Deltas = append(n.Deltas, Delta{Op: op, Pos: ds.Pos})
		}
	}
	return n, nil
}

// ToDocument converts a description tree back into its wire form.
func ToDocument(n *Node) *Document {
	if n == nil {
		return nil
	}
	if n.Kind == KindText {
		return &Document{Key: n.Key, Text: n.Text}
	}
	d := &Document{Tag: n.Tag, Key: n.Key, Text: n.Text}
	if n.Flag != FlagDefault {
		d.Flag = n.Flag.String()
	}
	for _, c := range n.Children {
		d.Children = append(d.Children, *ToDocument(c))
	}
	if n.Deltas != nil {
		d.HasDeltas = true
		for _, delta := range n.Deltas {
			d.Deltas = append(d.Deltas, DeltaDoc{Op: delta.Op.String(), Pos: delta.Pos})
		}
	}
	return d
}

// DecodeJSON parses a JSON description tree.
func DecodeJSON(data []byte) (*Node, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDescription, err)
	}
	return d.Build()
}

// DecodeYAML parses a YAML description tree.
func DecodeYAML(data []byte) (*Node, error) {
	var d Document
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDescription, err)
	}
	return d.Build()
}

// DecodeScenario parses a YAML (or JSON, which is valid YAML) scenario.
func DecodeScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDescription, err)
	}
	if s.Next == nil {
		return nil, fmt.Errorf("%w: scenario %q has no next tree", ErrInvalidDescription, s.Name)
	}
	return &s, nil
}
