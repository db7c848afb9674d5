package companies

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/resumehq/resume-analyzer/internal/core/domain"
)

// Directory is the static hiring directory, keyed by domain label. It is
// loaded once at startup and read-only afterwards.
type Directory struct {
	byDomain map[string][]domain.Company
}

// Load reads the directory from a YAML file or an XLSX workbook, selected
// by extension. An empty path returns the built-in seed directory.
func Load(path string) (*Directory, error) {
	if path == "" {
		return &Directory{byDomain: seedDirectory()}, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return loadYAML(path)
	case ".xlsx":
		return loadXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported company directory format: %s", path)
	}
}

// CompaniesFor returns up to limit companies for the domain, scored by skill
// overlap when skills are provided. Unknown domains yield an empty list.
func (d *Directory) CompaniesFor(domainLabel string, skills []string, limit int) []domain.Company {
	entries := d.byDomain[domainLabel]

	out := make([]domain.Company, len(entries))
	copy(out, entries)

	if len(skills) > 0 {
		skillSet := make(map[string]struct{}, len(skills))
		for _, s := range skills {
			skillSet[strings.ToLower(s)] = struct{}{}
		}
		for i := range out {
			var matching []string
			for _, focus := range out[i].HiringFocus {
				if _, ok := skillSet[strings.ToLower(focus)]; ok {
					matching = append(matching, focus)
				}
			}
			out[i].SkillMatchScore = len(matching)
			out[i].MatchingSkills = matching
		}
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].SkillMatchScore > out[j].SkillMatchScore
		})
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Domains lists the domains present in the directory, sorted.
func (d *Directory) Domains() []string {
	out := make([]string, 0, len(d.byDomain))
	for label := range d.byDomain {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

type yamlCompany struct {
	Name           string   `yaml:"name"`
	Location       string   `yaml:"location"`
	Size           string   `yaml:"size"`
	Industry       string   `yaml:"industry"`
	HiringFocus    []string `yaml:"hiring_focus"`
	ApplicationURL string   `yaml:"application_url"`
}

func loadYAML(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read company directory: %w", err)
	}

	var raw map[string][]yamlCompany
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode company directory: %w", err)
	}

	byDomain := make(map[string][]domain.Company, len(raw))
	for label, entries := range raw {
		companies := make([]domain.Company, 0, len(entries))
		for _, e := range entries {
			companies = append(companies, domain.Company{
				Name:           e.Name,
				Location:       e.Location,
				Size:           e.Size,
				Industry:       e.Industry,
				HiringFocus:    e.HiringFocus,
				ApplicationURL: e.ApplicationURL,
			})
		}
		byDomain[label] = companies
	}
	return &Directory{byDomain: byDomain}, nil
}

// loadXLSX expects one row per company on the first sheet with columns:
// domain, name, location, size, industry, hiring focus (comma separated),
// application url. The first row is treated as a header.
func loadXLSX(path string) (*Directory, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open company workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("company workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read company rows: %w", err)
	}

	byDomain := make(map[string][]domain.Company)
	for i, row := range rows {
		if i == 0 || len(row) < 2 {
			continue
		}
		label := strings.TrimSpace(cell(row, 0))
		if label == "" {
			continue
		}
		company := domain.Company{
			Name:           strings.TrimSpace(cell(row, 1)),
			Location:       strings.TrimSpace(cell(row, 2)),
			Size:           strings.TrimSpace(cell(row, 3)),
			Industry:       strings.TrimSpace(cell(row, 4)),
			ApplicationURL: strings.TrimSpace(cell(row, 6)),
		}
		for _, focus := range strings.Split(cell(row, 5), ",") {
			if focus = strings.TrimSpace(focus); focus != "" {
				company.HiringFocus = append(company.HiringFocus, focus)
			}
		}
		byDomain[label] = append(byDomain[label], company)
	}
	return &Directory{byDomain: byDomain}, nil
}

func cell(row []string, index int) string {
	if index < len(row) {
		return row[index]
	}
	return ""
}
