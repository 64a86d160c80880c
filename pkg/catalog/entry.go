package catalog

// CourseInfo describes the course the menu belongs to.
type CourseInfo struct {
	// Title is the course name shown above the menu.
	Title string `json:"title" yaml:"title"`

	// Description is a free-form summary of the course.
	Description string `json:"description" yaml:"description"`

	// ImageURL points at the course cover image.
	ImageURL string `json:"imageUrl" yaml:"imageUrl"`
}

// SubMenuEntry is a navigation record nested under a MenuEntry.
// Sub-entries never carry their own submenu.
type SubMenuEntry struct {
	// Href is the target route. Empty means the entry is a non-navigable placeholder.
	Href string `json:"href" yaml:"href"`

	// Label is the human-readable (localized) text of the entry.
	Label string `json:"label" yaml:"label"`

	// Date is kept as authored, it is never parsed.
	Date string `json:"date" yaml:"date"`
}

// HasLink reports whether the sub-entry points somewhere.
func (s SubMenuEntry) HasLink() bool {
	return s.Href != ""
}

// MenuEntry is a top-level menu record, typically a course week or section.
type MenuEntry struct {
	// Href is the target route. Empty means the entry is a non-navigable placeholder.
	Href string `json:"href" yaml:"href"`

	// Label is the human-readable (localized) text of the entry.
	Label string `json:"label" yaml:"label"`

	// Date is kept as authored, it is never parsed.
	Date string `json:"date" yaml:"date"`

	// Submenu holds the child entries in authoring order.
	Submenu []SubMenuEntry `json:"submenu" yaml:"submenu"`
}

// HasLink reports whether the entry itself points somewhere.
func (e MenuEntry) HasLink() bool {
	return e.Href != ""
}

// clone returns a copy of e that shares no memory with it.
// Submenu is never nil so it encodes as [] rather than null.
func (e MenuEntry) clone() MenuEntry {
	sub := make([]SubMenuEntry, len(e.Submenu))
	copy(sub, e.Submenu)
	e.Submenu = sub
	return e
}

// Document is the serialized form of a catalog.
// It is what Parse reads and what Catalog.Document produces.
type Document struct {
	DevMode bool        `json:"devMode" yaml:"devMode"`
	Course  CourseInfo  `json:"course" yaml:"course"`
	Items   []MenuEntry `json:"items" yaml:"items"`
}
