package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProfile() *Profile {
	return &Profile{
		Name:    "Jane Doe",
		Summary: "Backend engineer with 6 years of experience.",
		Experiences: []Experience{
			{
				Title:        "Senior Engineer",
				Company:      "Acme",
				Bullets:      []string{"Built payment service", "Led team of 4"},
				Technologies: []string{"Go", "PostgreSQL"},
			},
		},
		Projects: []Project{
			{
				Name:         "sidecar",
				Description:  "Proxy sidecar",
				Bullets:      []string{"Reduced latency by 30%"},
				Technologies: []string{"Go"},
			},
		},
		Skills: []Skill{{Name: "Go"}, {Name: "Docker"}},
		OtherSections: []OtherSection{
			{Name: "Leadership", Items: []Record{{"description": "Mentored interns"}}},
		},
		Certifications: []Record{{"name": "CKA"}},
		Metadata:       map[string]any{"source": "upload"},
	}
}

func TestDeepCopy_Independence(t *testing.T) {
	original := sampleProfile()
	cp := original.DeepCopy()

	cp.Summary = "changed"
	cp.Experiences[0].Bullets[0] = "changed bullet"
	cp.Experiences[0].Technologies = append(cp.Experiences[0].Technologies, "Redis")
	cp.Projects[0].Bullets[0] = "changed project bullet"
	cp.Skills = append(cp.Skills, Skill{Name: "Kubernetes"})
	cp.OtherSections[0].Items[0]["description"] = "changed item"
	cp.Certifications[0]["name"] = "changed cert"
	cp.Metadata["source"] = "changed"

	assert.Equal(t, "Backend engineer with 6 years of experience.", original.Summary)
	assert.Equal(t, "Built payment service", original.Experiences[0].Bullets[0])
	assert.Len(t, original.Experiences[0].Technologies, 2)
	assert.Equal(t, "Reduced latency by 30%", original.Projects[0].Bullets[0])
	assert.Len(t, original.Skills, 2)
	assert.Equal(t, "Mentored interns", original.OtherSections[0].Items[0]["description"])
	assert.Equal(t, "CKA", original.Certifications[0]["name"])
	assert.Equal(t, "upload", original.Metadata["source"])
}

func TestDeepCopy_PreservesCounts(t *testing.T) {
	original := sampleProfile()
	cp := original.DeepCopy()

	require.Len(t, cp.Experiences, len(original.Experiences))
	require.Len(t, cp.Projects, len(original.Projects))
	require.Len(t, cp.Skills, len(original.Skills))
	require.Len(t, cp.OtherSections, len(original.OtherSections))
	require.Len(t, cp.Certifications, len(original.Certifications))
}

func TestAllTechnologies_SortedSet(t *testing.T) {
	profile := sampleProfile()
	assert.Equal(t, []string{"Go", "PostgreSQL"}, profile.AllTechnologies())
}

func TestSkillNames(t *testing.T) {
	profile := sampleProfile()
	assert.Equal(t, []string{"Go", "Docker"}, profile.SkillNames())
}
