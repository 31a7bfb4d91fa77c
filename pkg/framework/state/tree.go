package state

import (
	"encoding/xml"
	"fmt"
	"strconv"
)

// Tree is a typed node with ordered string properties and child nodes.
// It serializes to XML with the type as element name and properties as attributes.
type Tree struct {
	Type     string
	Props    []Property
	Children []*Tree
}

// Property is a single name/value pair on a Tree
type Property struct {
	Name  string
	Value string
}

// NewTree creates an empty node of the given type
func NewTree(typ string) *Tree {
	return &Tree{Type: typ}
}

// Set assigns a property, replacing any existing value
func (t *Tree) Set(name, value string) {
	for i := range t.Props {
		if t.Props[i].Name == name {
			t.Props[i].Value = value
			return
		}
	}
	t.Props = append(t.Props, Property{Name: name, Value: value})
}

// SetFloat assigns a float property using the shortest exact representation
func (t *Tree) SetFloat(name string, value float64) {
	t.Set(name, strconv.FormatFloat(value, 'g', -1, 64))
}

// SetInt assigns an integer property
func (t *Tree) SetInt(name string, value int) {
	t.Set(name, strconv.Itoa(value))
}

// Get returns a property value
func (t *Tree) Get(name string) (string, bool) {
	for _, p := range t.Props {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Float returns a property parsed as float64
func (t *Tree) Float(name string) (float64, error) {
	s, ok := t.Get(name)
	if !ok {
		return 0, fmt.Errorf("property %q not found", name)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("property %q: %w", name, err)
	}
	return v, nil
}

// Int returns a property parsed as int
func (t *Tree) Int(name string) (int, error) {
	s, ok := t.Get(name)
	if !ok {
		return 0, fmt.Errorf("property %q not found", name)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("property %q: %w", name, err)
	}
	return v, nil
}

// Add appends a child node and returns it
func (t *Tree) Add(child *Tree) *Tree {
	t.Children = append(t.Children, child)
	return child
}

// ChildrenOfType returns direct children with the given type
func (t *Tree) ChildrenOfType(typ string) []*Tree {
	var out []*Tree
	for _, c := range t.Children {
		if c.Type == typ {
			out = append(out, c)
		}
	}
	return out
}

// MarshalXML implements xml.Marshaler
func (t *Tree) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if t.Type == "" {
		return fmt.Errorf("tree node has no type")
	}

	start.Name = xml.Name{Local: t.Type}
	start.Attr = make([]xml.Attr, 0, len(t.Props))
	for _, p := range t.Props {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: p.Name}, Value: p.Value})
	}

	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, c := range t.Children {
		if err := e.EncodeElement(c, start); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// UnmarshalXML implements xml.Unmarshaler
func (t *Tree) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	t.Type = start.Name.Local
	t.Props = t.Props[:0]
	t.Children = nil
	for _, a := range start.Attr {
		t.Props = append(t.Props, Property{Name: a.Name.Local, Value: a.Value})
	}

	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			child := &Tree{}
			if err := child.UnmarshalXML(d, el); err != nil {
				return err
			}
			t.Children = append(t.Children, child)
		case xml.EndElement:
			return nil
		}
	}
}
