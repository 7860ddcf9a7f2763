// Package entity is a minimal model of the drawing entities that paths are
// built from and exported to, together with a handle database.
package entity

import (
	"iter"
	"slices"
	"strconv"
	"strings"
)

// AutoCAD Color Index values with special meaning.
const (
	ColorByBlock = 0
	ColorByLayer = 256
)

// Attribs are the graphical attributes shared by all entities. Exporters copy
// caller supplied Attribs onto every entity they create.
type Attribs struct {
	Layer    string
	Linetype string
	// Color is an AutoCAD Color Index, see [ACI]. Nil means "not set"; new
	// entities use ColorByLayer in that case.
	Color *int
}

// ACI returns a Color value for the AutoCAD Color Index n.
func ACI(n int) *int { return &n }

// ColorIndex returns the color, or ColorByLayer if it isn't set.
func (a Attribs) ColorIndex() int {
	if a.Color == nil {
		return ColorByLayer
	}
	return *a.Color
}

// withDefaults fills unset attributes. The color is copied, so entities
// never share it with the caller.
func (a Attribs) withDefaults() Attribs {
	if a.Layer == "" {
		a.Layer = "0"
	}
	a.Color = ACI(a.ColorIndex())
	return a
}

// Common holds the data every entity has, besides its geometry.
type Common struct {
	// Handle is assigned by Document.Add.
	Handle string
	// Doc is the document owning the entity, or nil.
	Doc *Document
	Attribs
}

func (c *Common) common() *Common { return c }

// Entity is a drawing entity.
type Entity interface {
	// DXFType returns the DXF type name, such as "LINE" or "LWPOLYLINE".
	DXFType() string
	common() *Common
}

// CommonOf returns the common data of e.
func CommonOf(e Entity) *Common { return e.common() }

// Document is a database of entities indexed by handle.
type Document struct {
	entities map[string]Entity
	handles  []string
	seed     uint64
}

func NewDocument() *Document {
	return &Document{entities: map[string]Entity{}}
}

// Add assigns the next free handle to e, makes d its owner, and returns the
// handle.
func (d *Document) Add(e Entity) string {
	d.seed++
	handle := strings.ToUpper(strconv.FormatUint(d.seed, 16))
	c := e.common()
	c.Handle = handle
	c.Doc = d
	d.entities[handle] = e
	d.handles = append(d.handles, handle)
	return handle
}

// Get returns the entity with the given handle.
func (d *Document) Get(handle string) (Entity, bool) {
	if d == nil {
		return nil, false
	}
	e, ok := d.entities[strings.ToUpper(handle)]
	return e, ok
}

// Len returns the number of entities.
func (d *Document) Len() int { return len(d.handles) }

// Entities returns an iterator over all entities in the order they were
// added.
func (d *Document) Entities() iter.Seq2[string, Entity] {
	return func(yield func(string, Entity) bool) {
		for _, h := range slices.Clone(d.handles) {
			if !yield(h, d.entities[h]) {
				return
			}
		}
	}
}
