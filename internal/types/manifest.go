package types

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the on-disk shape of a package manifest. Both JSON and
// YAML documents decode into it.
type ManifestFile struct {
	Name              string                       `yaml:"name"`
	Version           string                       `yaml:"version"`
	Source            *ManifestSource              `yaml:"source,omitempty"`
	SourceFiles       StringList                   `yaml:"source_files,omitempty"`
	Dependencies      DependencyMap                `yaml:"dependencies,omitempty"`
	EntryPoints       map[string]map[string]string `yaml:"entry_points,omitempty"`
	Libraries         StringList                   `yaml:"libraries,omitempty"`
	TestSpec          *ManifestTestSpec            `yaml:"test_spec,omitempty"`
	TestSpecification *ManifestTestSpec            `yaml:"test_specification,omitempty"`
	Subspecs          []map[string]any             `yaml:"subspecs,omitempty"`
}

type ManifestSource struct {
	Git string `yaml:"git"`
	Tag string `yaml:"tag"`
}

type ManifestTestSpec struct {
	SourceFiles  StringList    `yaml:"source_files,omitempty"`
	Dependencies DependencyMap `yaml:"dependencies,omitempty"`
}

// StringList accepts either a single string or a list of strings.
type StringList []string

func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var value string
		if err := node.Decode(&value); err != nil {
			return err
		}
		*l = StringList{value}
		return nil
	case yaml.SequenceNode:
		var values []string
		if err := node.Decode(&values); err != nil {
			return err
		}
		*l = values
		return nil
	default:
		return fmt.Errorf("line %d: expected string or list of strings", node.Line)
	}
}

// ManifestDependency is one entry of a DependencyMap.
type ManifestDependency struct {
	Name         string
	Requirements []string
}

// DependencyMap is a name to requirement-list mapping that keeps the
// order in which entries appear in the document.
type DependencyMap []ManifestDependency

func (m *DependencyMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: dependencies must be a mapping", node.Line)
	}
	entries := make(DependencyMap, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		var requirements StringList
		if value := node.Content[i+1]; value.Tag != "!!null" {
			if err := value.Decode(&requirements); err != nil {
				return fmt.Errorf("dependency %s: %w", key.Value, err)
			}
		}
		entries = append(entries, ManifestDependency{Name: key.Value, Requirements: requirements})
	}
	*m = entries
	return nil
}

func (m DependencyMap) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, entry := range m {
		value := &yaml.Node{}
		if err := value.Encode([]string(entry.Requirements)); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: entry.Name},
			value,
		)
	}
	return node, nil
}
