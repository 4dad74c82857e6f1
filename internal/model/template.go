package model

import "fmt"

// Template identifies the creation script used to populate a new container's
// root filesystem, plus the flat argument list passed to it. Options are kept
// in insertion order and are not interpreted here: an option may be a bare
// flag with no paired value.
type Template struct {
	Name    string
	Options []string
}

// NewTemplate returns a template descriptor for the named creation script.
func NewTemplate(name string) *Template {
	return &Template{Name: name}
}

// Option appends arguments to the template option list.
//
//	tpl := model.NewTemplate("download").
//		Option("-d", "alpine").
//		Option("-r", "3.6").
//		Option("-a", "amd64")
func (t *Template) Option(args ...string) *Template {
	t.Options = append(t.Options, args...)
	return t
}

// Validate validates the template descriptor.
func (t Template) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("template name is required: %w", ErrNotValid)
	}

	return nil
}
