package pages

import (
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

// file is the on-disk shape of a registry document.
type file struct {
	Pages map[ID]string `yaml:"pages"`
}

// LoadYAML reads a registry from a YAML document of the form:
//
//	pages:
//	  overview: overview.md
//	  faq: faq.md
func LoadYAML(r io.Reader) (*Registry, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyRegistry
		}
		return nil, errors.Join(ErrDecode, err)
	}
	return New(f.Pages)
}
