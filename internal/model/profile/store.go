package profile

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store exposes the résumé content to HTTP handlers.
type Store interface {
	Get() Profile
}

// MemoryStore implements Store over a profile fixed at startup.
type MemoryStore struct {
	item Profile
}

// NewMemoryStore returns a MemoryStore holding a copy of item.
func NewMemoryStore(item Profile) *MemoryStore {
	return &MemoryStore{item: clone(item)}
}

// Get returns a copy of the stored profile.
func (s *MemoryStore) Get() Profile {
	return clone(s.item)
}

// Load reads a YAML profile from path. An empty path yields Seed().
func Load(path string) (Profile, error) {
	if strings.TrimSpace(path) == "" {
		return Seed(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("reading profile: %w", err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parsing profile: %w", err)
	}

	if err := p.Validate(); err != nil {
		return Profile{}, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

// Validate checks the fields the page and the assistant cannot do without.
func (p Profile) Validate() error {
	var errs []error
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if strings.TrimSpace(p.AssistantBrief) == "" {
		errs = append(errs, errors.New("assistant_brief is required"))
	}

	seen := make(map[string]bool, len(p.Documents))
	for _, doc := range p.Documents {
		if doc.Name == "" || doc.File == "" {
			errs = append(errs, fmt.Errorf("document %q needs both name and file", doc.Label))
			continue
		}
		if seen[doc.Name] {
			errs = append(errs, fmt.Errorf("duplicate document name %q", doc.Name))
		}
		seen[doc.Name] = true
	}
	return errors.Join(errs...)
}

func clone(p Profile) Profile {
	out := p
	out.Social = append([]Link(nil), p.Social...)
	out.Projects = append([]Link(nil), p.Projects...)
	out.Experience = append([]string(nil), p.Experience...)
	out.Skills = append([]string(nil), p.Skills...)
	out.Documents = append([]Document(nil), p.Documents...)
	out.SuggestedQuestions = append([]string(nil), p.SuggestedQuestions...)
	out.Jobs = make([]Job, len(p.Jobs))
	for i, job := range p.Jobs {
		job.Highlights = append([]string(nil), job.Highlights...)
		out.Jobs[i] = job
	}
	return out
}
