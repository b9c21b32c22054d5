package source

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/smokerun/smokerun/model"
)

// YAMLSource loads cases from a local YAML file holding a list of case
// objects, for suites kept next to the code instead of in a spreadsheet.
type YAMLSource struct {
	path string
}

// NewYAMLSource builds a YAML file source.
func NewYAMLSource(path string) *YAMLSource {
	return &YAMLSource{path: path}
}

type yamlCase struct {
	ID                  string `yaml:"id"`
	Engine              string `yaml:"engine"`
	Name                string `yaml:"name"`
	URL                 string `yaml:"url"`
	AssertTitleContains string `yaml:"assert_title_contains"`
}

// LoadCases reads the YAML case list, applying the same trimming and
// empty-id rejection rules as the tabular sources.
func (s *YAMLSource) LoadCases(ctx context.Context) ([]model.TestCase, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var raw []yamlCase
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrFormat, s.path, err)
	}

	cases := make([]model.TestCase, 0, len(raw))
	for _, rc := range raw {
		c := model.TestCase{
			ID:                  strings.TrimSpace(rc.ID),
			Engine:              strings.TrimSpace(rc.Engine),
			Name:                strings.TrimSpace(rc.Name),
			URL:                 strings.TrimSpace(rc.URL),
			AssertTitleContains: strings.TrimSpace(rc.AssertTitleContains),
		}
		if c.ID == "" {
			continue
		}
		cases = append(cases, c)
	}
	return cases, nil
}
