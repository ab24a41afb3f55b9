package opencli

// Info carries core metadata about the command-line application.
type Info struct {
	Title       string   `json:"title" yaml:"title" validate:"required"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string   `json:"version" yaml:"version" validate:"required"`
	Contact     *Contact `json:"contact,omitempty" yaml:"contact,omitempty"`
	License     *License `json:"license,omitempty" yaml:"license,omitempty"`
}

// NewInfo creates an Info with the required title and version.
func NewInfo(title, version string) Info {
	return Info{Title: title, Version: version}
}

// WithDescription sets the application description.
func (i Info) WithDescription(desc string) Info {
	i.Description = desc
	return i
}

// WithContact sets the contact information.
func (i Info) WithContact(c Contact) Info {
	i.Contact = &c
	return i
}

// WithLicense sets the license information.
func (i Info) WithLicense(l License) Info {
	i.License = &l
	return i
}

// Contact identifies who maintains the application.
type Contact struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	URL   string `json:"url,omitempty" yaml:"url,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty" validate:"omitempty,email"`
}

// License names the license the application is distributed under.
type License struct {
	Name string `json:"name" yaml:"name" validate:"required"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
}
