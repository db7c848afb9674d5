package companies

import "github.com/resumehq/resume-analyzer/internal/core/domain"

// seedDirectory is the built-in directory used when no external file is
// configured. Kept small on purpose; deployments with a real directory
// point COMPANIES_PATH at a YAML or XLSX file.
func seedDirectory() map[string][]domain.Company {
	return map[string][]domain.Company{
		"Software Engineering": {
			{
				Name:           "Google",
				Location:       "Mountain View, CA",
				Size:           "Large (100,000+ employees)",
				Industry:       "Technology",
				HiringFocus:    []string{"Python", "Java", "Go", "Machine Learning"},
				ApplicationURL: "https://careers.google.com",
			},
			{
				Name:           "Microsoft",
				Location:       "Redmond, WA",
				Size:           "Large (200,000+ employees)",
				Industry:       "Technology",
				HiringFocus:    []string{"C#", ".NET", "Azure", "AI"},
				ApplicationURL: "https://careers.microsoft.com",
			},
			{
				Name:           "Meta",
				Location:       "Menlo Park, CA",
				Size:           "Large (70,000+ employees)",
				Industry:       "Social Media",
				HiringFocus:    []string{"React", "JavaScript", "Python", "Mobile Development"},
				ApplicationURL: "https://www.metacareers.com",
			},
		},
		"Data Science": {
			{
				Name:           "Netflix",
				Location:       "Los Gatos, CA",
				Size:           "Large (15,000+ employees)",
				Industry:       "Entertainment/Streaming",
				HiringFocus:    []string{"Python", "R", "Machine Learning", "Big Data"},
				ApplicationURL: "https://jobs.netflix.com",
			},
			{
				Name:           "Spotify",
				Location:       "Stockholm, Sweden",
				Size:           "Medium (6,000+ employees)",
				Industry:       "Music/Streaming",
				HiringFocus:    []string{"Python", "Scala", "Machine Learning", "Analytics"},
				ApplicationURL: "https://www.lifeatspotify.com",
			},
		},
		"Marketing": {
			{
				Name:           "HubSpot",
				Location:       "Cambridge, MA",
				Size:           "Medium (5,000+ employees)",
				Industry:       "Marketing Technology",
				HiringFocus:    []string{"Digital Marketing", "Content Strategy", "SEO", "Analytics"},
				ApplicationURL: "https://www.hubspot.com/careers",
			},
		},
	}
}
