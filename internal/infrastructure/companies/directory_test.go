package companies

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLoadSeedDirectory(t *testing.T) {
	dir, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, []string{"Data Science", "Marketing", "Software Engineering"}, dir.Domains())
	assert.Len(t, dir.CompaniesFor("Software Engineering", nil, 0), 3)
	assert.Empty(t, dir.CompaniesFor("Underwater Basket Weaving", nil, 0))
}

func TestCompaniesForScoresBySkillOverlap(t *testing.T) {
	dir, err := Load("")
	require.NoError(t, err)

	got := dir.CompaniesFor("Software Engineering", []string{"go", "Machine Learning"}, 0)
	require.Len(t, got, 3)

	assert.Equal(t, "Google", got[0].Name)
	assert.Equal(t, 2, got[0].SkillMatchScore)
	assert.ElementsMatch(t, []string{"Go", "Machine Learning"}, got[0].MatchingSkills)
	assert.Zero(t, got[1].SkillMatchScore)
}

func TestCompaniesForLimit(t *testing.T) {
	dir, err := Load("")
	require.NoError(t, err)

	assert.Len(t, dir.CompaniesFor("Software Engineering", nil, 2), 2)
}

func TestCompaniesForDoesNotMutateDirectory(t *testing.T) {
	dir, err := Load("")
	require.NoError(t, err)

	dir.CompaniesFor("Software Engineering", []string{"Go"}, 0)
	plain := dir.CompaniesFor("Software Engineering", nil, 0)
	for _, c := range plain {
		assert.Zero(t, c.SkillMatchScore, "scores must not leak into the directory")
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "companies.yaml")
	data := `Software Engineering:
  - name: Acme
    location: Berlin, Germany
    size: Small (50 employees)
    industry: Technology
    hiring_focus: [Go, Kubernetes]
    application_url: https://acme.example/careers
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	dir, err := Load(path)
	require.NoError(t, err)

	got := dir.CompaniesFor("Software Engineering", nil, 0)
	require.Len(t, got, 1)
	assert.Equal(t, "Acme", got[0].Name)
	assert.Equal(t, []string{"Go", "Kubernetes"}, got[0].HiringFocus)
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "companies.xlsx")

	f := excelize.NewFile()
	rows := [][]any{
		{"domain", "name", "location", "size", "industry", "hiring_focus", "application_url"},
		{"Marketing", "Brandly", "Austin, TX", "Small", "Marketing", "SEO, Analytics", "https://brandly.example"},
	}
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cellRef, &row))
	}
	require.NoError(t, f.SaveAs(path))

	dir, err := Load(path)
	require.NoError(t, err)

	got := dir.CompaniesFor("Marketing", nil, 0)
	require.Len(t, got, 1)
	assert.Equal(t, "Brandly", got[0].Name)
	assert.Equal(t, []string{"SEO", "Analytics"}, got[0].HiringFocus)
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	_, err := Load("companies.csv")
	assert.Error(t, err)
}
