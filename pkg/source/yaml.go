package source

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/tlfs/pkg/errors"
)

// ReadYAML decodes a YAML structure file. Unknown fields are rejected.
func ReadYAML(r io.Reader) (*Structure, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Structure
	if err := dec.Decode(&s); err != nil {
		if err == io.EOF {
			return nil, errors.New(errors.ErrCodeInvalidInput, "structure file is empty")
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
	}

	for i := range s.Quantities {
		s.Quantities[i].at = fmt.Sprintf("quantities[%d] (%s)", i, s.Quantities[i].ID)
	}
	for i := range s.Categories {
		s.Categories[i].at = fmt.Sprintf("categories[%d] (%s)", i, s.Categories[i].ID)
	}
	for i := range s.Itemsets {
		s.Itemsets[i].at = fmt.Sprintf("itemsets[%d] (%s)", i, s.Itemsets[i].ID)
	}
	for i := range s.Sections {
		if s.Sections[i].Title == "" {
			s.Sections[i].Title = defaultSection
		}
		for j := range s.Sections[i].Tables {
			s.Sections[i].Tables[j].at = fmt.Sprintf("sections[%d].tables[%d]", i, j)
		}
	}
	return &s, nil
}

// WriteYAML encodes a structure as YAML.
func WriteYAML(w io.Writer, s *Structure) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode yaml")
	}
	return enc.Close()
}
