package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// validate is shared, validator caches struct metadata and is safe for concurrent use.
var validate = newValidator()

// The raw* types mirror Document but keep href as a pointer so that an
// absent href can be told apart from an explicitly empty one.
type rawDocument struct {
	DevMode bool       `yaml:"devMode"`
	Course  rawCourse  `yaml:"course"`
	Items   []rawEntry `yaml:"items" validate:"min=1,dive"`
}

type rawCourse struct {
	Title       string `yaml:"title" validate:"required,notblank"`
	Description string `yaml:"description"`
	ImageURL    string `yaml:"imageUrl"`
}

type rawEntry struct {
	Href    *string       `yaml:"href" validate:"required"`
	Label   string        `yaml:"label" validate:"required,notblank"`
	Date    string        `yaml:"date" validate:"required,notblank"`
	Submenu []rawSubEntry `yaml:"submenu" validate:"dive"`
}

type rawSubEntry struct {
	Href  *string `yaml:"href" validate:"required"`
	Label string  `yaml:"label" validate:"required,notblank"`
	Date  string  `yaml:"date" validate:"required,notblank"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report wire names instead of Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// whitespace-only text renders as an empty label
	if err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		panic(fmt.Sprintf("failed to register notblank validation: %v", err))
	}

	return v
}

// Load reads and parses the catalog document at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}

	return c, nil
}

// Parse builds a catalog from a YAML (or JSON) document.
// Unknown keys are rejected, which also rules out a submenu under a sub-entry.
// The input must hold exactly one document and at least one menu entry.
// On any problem Parse returns a *MalformedEntryError and no catalog.
func Parse(data []byte) (*Catalog, error) {
	var raw rawDocument

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &MalformedEntryError{Reason: "document is empty"}
		}
		return nil, &MalformedEntryError{Reason: "cannot decode document", Err: err}
	}

	// a trailing document would otherwise be silently ignored
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, &MalformedEntryError{Reason: "document must contain a single catalog", Err: err}
	}

	if err := validate.Struct(&raw); err != nil {
		return nil, validationError(err)
	}

	return New(raw.document()), nil
}

func (r *rawDocument) document() Document {
	doc := Document{
		DevMode: r.DevMode,
		Course: CourseInfo{
			Title:       r.Course.Title,
			Description: r.Course.Description,
			ImageURL:    r.Course.ImageURL,
		},
		Items: make([]MenuEntry, len(r.Items)),
	}

	for i, e := range r.Items {
		entry := MenuEntry{
			Href:    *e.Href,
			Label:   e.Label,
			Date:    e.Date,
			Submenu: make([]SubMenuEntry, len(e.Submenu)),
		}
		for j, s := range e.Submenu {
			entry.Submenu[j] = SubMenuEntry{
				Href:  *s.Href,
				Label: s.Label,
				Date:  s.Date,
			}
		}
		doc.Items[i] = entry
	}

	return doc
}

// validationError converts the first validator failure into a MalformedEntryError.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &MalformedEntryError{Reason: "validation failed", Err: err}
	}

	fe := verrs[0]

	// namespace looks like "rawDocument.items[2].submenu[0].label"
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		ns = rest
	}
	path := strings.TrimSuffix(strings.TrimSuffix(ns, fe.Field()), ".")

	return &MalformedEntryError{
		Path:   path,
		Field:  fe.Field(),
		Reason: reason(fe),
	}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "min":
		return fmt.Sprintf("must contain at least %s entries", fe.Param())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
