package seed

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/DjordjeVuckovic/posts-feed/internal/domain"
	"gopkg.in/yaml.v3"
)

const (
	FixtureKind    = "PostFixture"
	FixtureVersion = "v1"
)

// Fixture is a YAML document of posts to create, in order.
type Fixture struct {
	Kind     string           `yaml:"kind"`
	Version  string           `yaml:"version"`
	Posts    []domain.NewPost `yaml:"posts"`
	Generate *Generate        `yaml:"generate,omitempty"`
}

// Generate asks for Count placeholder posts by Author after the listed posts.
type Generate struct {
	Author string `yaml:"author"`
	Count  int    `yaml:"count"`
}

func (f *Fixture) Validate() error {
	var errs []error
	if f.Kind != FixtureKind {
		errs = append(errs, fmt.Errorf("kind must be %q, got %q", FixtureKind, f.Kind))
	}
	if f.Version != FixtureVersion {
		errs = append(errs, fmt.Errorf("unsupported version %q", f.Version))
	}
	for i, p := range f.Posts {
		if strings.TrimSpace(p.Author) == "" || strings.TrimSpace(p.Title) == "" || strings.TrimSpace(p.Content) == "" {
			errs = append(errs, fmt.Errorf("posts[%d]: author, title and content are required", i))
		}
	}
	if g := f.Generate; g != nil {
		if strings.TrimSpace(g.Author) == "" {
			errs = append(errs, errors.New("generate.author is required"))
		}
		if g.Count < 0 {
			errs = append(errs, errors.New("generate.count must not be negative"))
		}
	}
	return errors.Join(errs...)
}

type YAMLFixtureLoader struct {
	reader io.Reader
}

func NewYAMLFixtureLoader(reader io.Reader) *YAMLFixtureLoader {
	return &YAMLFixtureLoader{
		reader: reader,
	}
}

func (l *YAMLFixtureLoader) Load(validate bool) (*Fixture, error) {
	decoder := yaml.NewDecoder(l.reader)
	decoder.KnownFields(true)

	var fixture Fixture
	if err := decoder.Decode(&fixture); err != nil {
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}
	if validate {
		if err := fixture.Validate(); err != nil {
			return nil, err
		}
	}
	return &fixture, nil
}
