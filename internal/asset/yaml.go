package asset

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// yamlObject mirrors the human-editable configuration format. The members
// list is kept loosely typed and normalized by ParseMembers, because members
// may be plain names, annotated mappings, or mappings with shared defaults.
type yamlObject struct {
	Name        string   `yaml:"as-set"`
	Description string   `yaml:"descr,omitempty"`
	AdminC      string   `yaml:"admin-c,omitempty"`
	TechC       string   `yaml:"tech-c,omitempty"`
	Maintainer  string   `yaml:"mnt-by,omitempty"`
	Source      string   `yaml:"source,omitempty"`
	Remarks     []string `yaml:"remarks,omitempty"`
	Members     []any    `yaml:"members,omitempty"`
}

// DecodeYAML parses the human-editable configuration format.
func DecodeYAML(data []byte) (*ASSet, error) {
	var obj yamlObject
	if err := yaml.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("invalid as-set document: %w", err)
	}
	name := strings.TrimSpace(obj.Name)
	if name == "" {
		return nil, fmt.Errorf("invalid as-set document: missing as-set name")
	}
	return &ASSet{
		Name:        name,
		Description: obj.Description,
		AdminC:      obj.AdminC,
		TechC:       obj.TechC,
		Maintainer:  obj.Maintainer,
		Source:      obj.Source,
		Remarks:     obj.Remarks,
		Members:     ParseMembers(obj.Members),
	}, nil
}

// EncodeYAML renders the object in the human-editable configuration format.
// Members without expansion annotations are written as plain names so a
// round-tripped file stays as readable as a hand-written one.
func EncodeYAML(set *ASSet) ([]byte, error) {
	obj := yamlObject{
		Name:        set.Name,
		Description: set.Description,
		AdminC:      set.AdminC,
		TechC:       set.TechC,
		Maintainer:  set.Maintainer,
		Source:      set.Source,
		Remarks:     set.Remarks,
	}
	for _, m := range set.Members {
		if !m.Flat && m.Depth < 0 && m.Sources == "" {
			obj.Members = append(obj.Members, m.Name)
			continue
		}
		cfg := map[string]any{}
		if m.Flat {
			cfg["flat"] = true
		}
		if m.Depth >= 0 {
			cfg["depth"] = m.Depth
		}
		if m.Sources != "" {
			cfg["source"] = m.Sources
		}
		obj.Members = append(obj.Members, map[string]any{m.Name: cfg})
	}
	out, err := yaml.Marshal(&obj)
	if err != nil {
		return nil, fmt.Errorf("encoding as-set %s: %w", set.Name, err)
	}
	return out, nil
}
