package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedIsValid(t *testing.T) {
	seed := Seed()
	require.NoError(t, seed.Validate())

	for _, name := range []string{"resume", "capstone", seed.Image} {
		_, ok := seed.FindDocument(name)
		assert.True(t, ok, "seed should declare document %q", name)
	}
}

func TestLoadEmptyPathReturnsSeed(t *testing.T) {
	p, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Seed(), p)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	content := `
name: Jane Doe
page_title: Resume | Jane Doe
email: jane@example.com
assistant_name: Jane's Assistant
assistant_brief: Jane builds data pipelines.
suggested_questions:
  - What do you build?
social:
  - label: Github
    url: https://github.com/janedoe
jobs:
  - title: Engineer
    company: Acme
    period: 2020 - Present
    highlights:
      - Shipped things
documents:
  - name: resume
    label: Download Resume
    file: jane.pdf
    mime: application/pdf
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	p, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", p.Name)
	assert.Equal(t, "Jane builds data pipelines.", p.AssistantBrief)
	assert.Equal(t, []string{"What do you build?"}, p.SuggestedQuestions)
	require.Len(t, p.Jobs, 1)
	assert.Equal(t, []string{"Shipped things"}, p.Jobs[0].Highlights)

	doc, ok := p.FindDocument("resume")
	require.True(t, ok)
	assert.Equal(t, "jane.pdf", doc.File)
}

func TestLoadRejectsIncompleteProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	content := `
name: ""
documents:
  - name: resume
    file: a.pdf
  - name: resume
    file: b.pdf
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "assistant_brief is required")
	assert.Contains(t, err.Error(), "duplicate document name")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore(Seed())

	got := store.Get()
	got.Skills[0] = "changed"
	got.Jobs[0].Highlights[0] = "changed"

	fresh := store.Get()
	assert.NotEqual(t, "changed", fresh.Skills[0])
	assert.NotEqual(t, "changed", fresh.Jobs[0].Highlights[0])
}
