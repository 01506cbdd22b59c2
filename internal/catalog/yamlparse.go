// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"
)

//go:embed catalog_schema.cue
var catalogSchema string

type (
	// yamlCatalog is the YAML wire format of a catalog document.
	yamlCatalog struct {
		Version     string                  `yaml:"version"`
		Description string                  `yaml:"description"`
		Categories  map[string]yamlCategory `yaml:"categories"`
	}

	yamlCategory struct {
		Name        string     `yaml:"name"`
		Description string     `yaml:"description"`
		Order       *int       `yaml:"order"`
		Icon        string     `yaml:"icon"`
		Tools       []yamlTool `yaml:"tools"`
	}

	yamlTool struct {
		Name        string   `yaml:"name"`
		Description string   `yaml:"description"`
		Command     string   `yaml:"command"`
		Tags        []string `yaml:"tags"`
		Requires    []string `yaml:"requires"`
		Optional    bool     `yaml:"optional"`
	}
)

// parseYAML parses the structured grammar. The document is first unified
// with the embedded CUE schema (structure and types), then decoded with
// yaml.v3 and checked for required fields. Tools keep their declaration
// order; duplicates are preserved.
func parseYAML(data []byte) (*Catalog, error) {
	if err := validateYAMLSchema(data); err != nil {
		return nil, err
	}

	var doc yamlCatalog
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Format: FormatYAML, Reason: "decoding document", Cause: err}
	}

	if len(doc.Categories) == 0 {
		return nil, ErrEmptyCatalog
	}

	cats := make([]*Category, 0, len(doc.Categories))
	for id, yc := range doc.Categories {
		cat := &Category{
			ID:          id,
			Name:        yc.Name,
			Description: yc.Description,
			Order:       DefaultOrder,
			Icon:        yc.Icon,
		}
		if cat.Name == "" {
			cat.Name = displayName(id)
		}
		if yc.Order != nil {
			cat.Order = *yc.Order
		}

		for i, yt := range yc.Tools {
			if err := requireToolFields(id, i, yt); err != nil {
				return nil, err
			}
			cat.Tools = append(cat.Tools, Tool{
				Name:        yt.Name,
				Description: yt.Description,
				Command:     yt.Command,
				Tags:        yt.Tags,
				Requires:    yt.Requires,
				Optional:    yt.Optional,
			})
		}

		cats = append(cats, cat)
	}

	return New(cats), nil
}

// validateYAMLSchema unifies the document with the embedded #Catalog
// definition. Definitions are closed, so unknown fields and type
// mismatches fail here with CUE's path-aware messages; required-field
// presence is enforced separately after decoding.
func validateYAMLSchema(data []byte) error {
	cuectx := cuecontext.New()

	schemaValue := cuectx.CompileString(catalogSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile catalog schema: %w", schemaValue.Err())
	}

	file, err := cueyaml.Extract("catalog.yaml", data)
	if err != nil {
		return &ParseError{Format: FormatYAML, Reason: "invalid YAML syntax", Cause: err}
	}

	docValue := cuectx.BuildFile(file)
	if docValue.Err() != nil {
		return &ParseError{Format: FormatYAML, Reason: "building document", Cause: docValue.Err()}
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Catalog"))
	if schema.Err() != nil {
		return fmt.Errorf("internal error: #Catalog definition not found: %w", schema.Err())
	}

	unified := schema.Unify(docValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return &ParseError{Format: FormatYAML, Reason: "schema violation", Cause: err}
	}

	return nil
}

// requireToolFields enforces the required tool fields that CUE cannot
// flag without concrete validation: name, description and command must
// all be present and non-empty.
func requireToolFields(categoryID string, index int, yt yamlTool) error {
	missing := ""
	switch {
	case yt.Name == "":
		missing = "name"
	case yt.Description == "":
		missing = "description"
	case yt.Command == "":
		missing = "command"
	}
	if missing == "" {
		return nil
	}
	return &ParseError{
		Format: FormatYAML,
		Reason: fmt.Sprintf("category %q: tool %d: missing required field %q", categoryID, index+1, missing),
	}
}
