package store

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/alexsisay/alemu-portfolio-backend/internal"
)

//go:embed content.yaml
var defaultContent []byte

// Content is the on-disk shape of the portfolio document.
type Content struct {
	Profile   internal.Profile    `yaml:"profile"`
	Posts     []internal.BlogPost `yaml:"posts"`
	Dashboard DashboardSettings   `yaml:"dashboard"`
}

func (c Content) Validate() error {
	if c.Profile.Personal.Name == "" {
		return errors.New("content: profile.personal.name is required")
	}
	seen := make(map[string]struct{}, len(c.Posts))
	for i, p := range c.Posts {
		if p.ID == "" {
			return fmt.Errorf("content: post %d has no id", i)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("content: duplicate post id %q", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

func ParseContent(b []byte) (Content, error) {
	var c Content
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Content{}, fmt.Errorf("content: parse: %w", err)
	}
	return c, nil
}

// Load builds the store from path, or from the embedded document when path
// is empty.
func Load(path string) (*MemoryStore, error) {
	raw := defaultContent
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("content: read %s: %w", path, err)
		}
		raw = b
	}
	c, err := ParseContent(raw)
	if err != nil {
		return nil, err
	}
	return NewMemoryStore(c)
}
