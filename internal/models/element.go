// Package models defines data structures shared by the reader, normalizer and shaper.
package models

import "encoding/xml"

// Element and child names used in OSM exports.
const (
	KindNode     = "node"
	KindWay      = "way"
	KindRelation = "relation"
	KindBounds   = "bounds"

	ChildTag     = "tag"
	ChildNodeRef = "nd"
	ChildMember  = "member"
)

// Element is one top-level entity of an OSM document together with its
// direct children. It lives only for the duration of a single processing step.
type Element struct {
	Kind     string
	Attrs    []xml.Attr
	Children []Child
}

// Child is a leaf element nested directly under a top-level element.
type Child struct {
	Name  string
	Attrs []xml.Attr
	// Synthetic marks children added by the exception table.
	Synthetic bool
}

// Tag is a key/value pair carried by a tag child.
type Tag struct {
	Key   string
	Value string
}

// NewTagChild builds a tag child from a key and value.
func NewTagChild(key, value string, synthetic bool) Child {
	return Child{
		Name: ChildTag,
		Attrs: []xml.Attr{
			{Name: xml.Name{Local: "k"}, Value: key},
			{Name: xml.Name{Local: "v"}, Value: value},
		},
		Synthetic: synthetic,
	}
}

// Attr returns the value of the named attribute and whether it was present.
func (e *Element) Attr(name string) (string, bool) {
	return lookupAttr(e.Attrs, name)
}

// ID returns the element id attribute, or an empty string.
func (e *Element) ID() string {
	id, _ := e.Attr("id")

	return id
}

// Tags returns the key/value pairs of all tag children in document order.
func (e *Element) Tags() []Tag {
	var tags []Tag

	for i := range e.Children {
		if tag, ok := e.Children[i].Tag(); ok {
			tags = append(tags, tag)
		}
	}

	return tags
}

// Refs returns the ref attribute of every nd child in document order.
func (e *Element) Refs() []string {
	var refs []string

	for _, c := range e.Children {
		if c.Name != ChildNodeRef {
			continue
		}

		if ref, ok := lookupAttr(c.Attrs, "ref"); ok {
			refs = append(refs, ref)
		}
	}

	return refs
}

// Attr returns the value of the named attribute of the child.
func (c *Child) Attr(name string) (string, bool) {
	return lookupAttr(c.Attrs, name)
}

// Tag returns the key/value pair of a tag child. ok is false for other children.
func (c *Child) Tag() (Tag, bool) {
	if c.Name != ChildTag {
		return Tag{}, false
	}

	k, hasKey := lookupAttr(c.Attrs, "k")
	v, _ := lookupAttr(c.Attrs, "v")

	return Tag{Key: k, Value: v}, hasKey
}

// SetValue replaces the v attribute of a tag child.
func (c *Child) SetValue(value string) {
	for i := range c.Attrs {
		if c.Attrs[i].Name.Local == "v" {
			c.Attrs[i].Value = value
			return
		}
	}

	c.Attrs = append(c.Attrs, xml.Attr{Name: xml.Name{Local: "v"}, Value: value})
}

func lookupAttr(attrs []xml.Attr, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}

	return "", false
}
