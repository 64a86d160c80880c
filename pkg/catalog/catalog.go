package catalog

import (
	_ "embed"
	"fmt"
)

//go:embed course.yaml
var courseDocument []byte

// defaultCatalog is built during package initialization and never reassigned.
var defaultCatalog = mustParse(courseDocument)

// Catalog is an immutable snapshot of the course menu.
// All accessors are safe for concurrent use without synchronization
// because nothing is written after construction.
type Catalog struct {
	course  CourseInfo
	items   []MenuEntry
	devMode bool
}

// Default returns the canonical course catalog compiled into the binary.
func Default() *Catalog {
	return defaultCatalog
}

// New builds a catalog from an already decoded document.
// The document is copied, later changes to doc do not leak into the catalog.
// New does not validate doc, use Parse for untrusted input.
func New(doc Document) *Catalog {
	items := make([]MenuEntry, len(doc.Items))
	for i, e := range doc.Items {
		items[i] = e.clone()
	}

	return &Catalog{
		course:  doc.Course,
		items:   items,
		devMode: doc.DevMode,
	}
}

// CourseInfo returns the course record.
func (c *Catalog) CourseInfo() CourseInfo {
	return c.course
}

// MenuEntries returns the top-level entries in authoring order.
// The result is a deep copy, callers may modify it freely.
func (c *Catalog) MenuEntries() []MenuEntry {
	items := make([]MenuEntry, len(c.items))
	for i, e := range c.items {
		items[i] = e.clone()
	}
	return items
}

// IsDevMode returns the development-mode flag.
func (c *Catalog) IsDevMode() bool {
	return c.devMode
}

// Len returns the number of top-level entries.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Entry returns a copy of the first top-level entry with the given label.
func (c *Catalog) Entry(label string) (MenuEntry, bool) {
	for _, e := range c.items {
		if e.Label == label {
			return e.clone(), true
		}
	}
	return MenuEntry{}, false
}

// Document returns the catalog in its serializable form.
func (c *Catalog) Document() Document {
	return Document{
		DevMode: c.devMode,
		Course:  c.course,
		Items:   c.MenuEntries(),
	}
}

func mustParse(data []byte) *Catalog {
	c, err := Parse(data)
	if err != nil {
		panic(fmt.Sprintf("embedded course catalog: %v", err))
	}
	return c
}
