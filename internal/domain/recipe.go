package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Requirement is a single named ingredient of a recipe
type Requirement struct {
	Name     string
	Quantity int
}

// Requirements is an insertion-ordered name -> quantity map.
// Order matters: feasibility checks report the first insufficient entry.
type Requirements []Requirement

// Get returns the quantity required for name
func (r Requirements) Get(name string) (int, bool) {
	for _, req := range r {
		if req.Name == name {
			return req.Quantity, true
		}
	}
	return 0, false
}

// Has reports whether name is part of the requirement set
func (r Requirements) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Set adds name or overwrites its quantity in place
func (r *Requirements) Set(name string, quantity int) {
	for i := range *r {
		if (*r)[i].Name == name {
			(*r)[i].Quantity = quantity
			return
		}
	}
	*r = append(*r, Requirement{Name: name, Quantity: quantity})
}

// Remove deletes name; it reports whether anything was removed
func (r *Requirements) Remove(name string) bool {
	for i := range *r {
		if (*r)[i].Name == name {
			*r = append((*r)[:i:i], (*r)[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns an independent copy
func (r Requirements) Clone() Requirements {
	if r == nil {
		return nil
	}
	out := make(Requirements, len(r))
	copy(out, r)
	return out
}

// Map returns the requirements as a plain map (order is lost)
func (r Requirements) Map() map[string]int {
	out := make(map[string]int, len(r))
	for _, req := range r {
		out[req.Name] = req.Quantity
	}
	return out
}

// MarshalJSON encodes the requirements as a JSON object in insertion order
func (r Requirements) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, req := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(req.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", req.Quantity)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping the key order of the document
func (r *Requirements) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*r = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("requirements: expected object, got %v", tok)
	}

	out := Requirements{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("requirements: expected string key, got %v", keyTok)
		}
		var qty int
		if err := dec.Decode(&qty); err != nil {
			return fmt.Errorf("requirements: %q: %w", key, err)
		}
		out.Set(key, qty)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*r = out
	return nil
}

// MarshalYAML encodes the requirements as an ordered YAML mapping
func (r Requirements) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, req := range r {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: req.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprintf("%d", req.Quantity)},
		)
	}
	return node, nil
}

// UnmarshalYAML decodes a YAML mapping keeping the key order of the document
func (r *Requirements) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		*r = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("requirements: line %d: expected mapping", value.Line)
	}

	out := Requirements{}
	for i := 0; i+1 < len(value.Content); i += 2 {
		var qty int
		if err := value.Content[i+1].Decode(&qty); err != nil {
			return fmt.Errorf("requirements: %q: %w", value.Content[i].Value, err)
		}
		out.Set(value.Content[i].Value, qty)
	}

	*r = out
	return nil
}

// RecipeKind tells whether a recipe produces a product or a material
type RecipeKind int

const (
	RecipeProduct RecipeKind = iota + 1
	RecipeMaterial
)

func (k RecipeKind) String() string {
	switch k {
	case RecipeProduct:
		return "Product"
	case RecipeMaterial:
		return "Material"
	default:
		return "Unknown"
	}
}

// RecipeRef names a craftable entity together with its kind.
// It is resolved once at the API boundary so name and kind can never disagree downstream.
type RecipeRef struct {
	Kind RecipeKind `json:"kind"`
	Name string     `json:"name"`
}

// ProductRecipe references the recipe of a product
func ProductRecipe(name string) RecipeRef {
	return RecipeRef{Kind: RecipeProduct, Name: name}
}

// MaterialRecipe references the recipe of a material
func MaterialRecipe(name string) RecipeRef {
	return RecipeRef{Kind: RecipeMaterial, Name: name}
}

// RecipeFromFlag converts the (name, isProduct) pair used by external callers
func RecipeFromFlag(name string, isProduct bool) RecipeRef {
	if isProduct {
		return ProductRecipe(name)
	}
	return MaterialRecipe(name)
}

// IsProduct reports whether the reference targets a product
func (r RecipeRef) IsProduct() bool {
	return r.Kind == RecipeProduct
}

func (r RecipeRef) String() string {
	return fmt.Sprintf("%s(%s)", r.Name, r.Kind)
}
