package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chasingbytes/resume/backend/internal/model/profile"
)

func TestBuildPersonaDescriptor(t *testing.T) {
	seed := profile.Seed()
	descriptor := BuildPersonaDescriptor(seed)

	assert.True(t, strings.HasPrefix(descriptor, "You are a helpful assistant that answers questions about Albert Shilling."))
	assert.Contains(t, descriptor, "Florida Atlantic University")
	assert.Contains(t, descriptor, "(download: /documents/capstone)")
	assert.Contains(t, descriptor, "(download: /documents/resume)")
	assert.NotContains(t, descriptor, "profile-image")
	assert.Contains(t, descriptor, seed.Email)
}

func TestBuildPersonaDescriptorIsStable(t *testing.T) {
	seed := profile.Seed()
	assert.Equal(t, BuildPersonaDescriptor(seed), BuildPersonaDescriptor(seed))
}

func TestBuildPersonaDescriptorWithoutDocuments(t *testing.T) {
	descriptor := BuildPersonaDescriptor(profile.Profile{Name: "Jane", AssistantBrief: "  Jane writes Go.  "})

	assert.Equal(t, "You are a helpful assistant that answers questions about Jane.\n\nJane writes Go.", descriptor)
}
