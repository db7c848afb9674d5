package domain

// KnownDomains lists the labels the service advertises for classification.
// The trained model may emit labels outside this set; SkillsFor falls back to
// the generic list for those.
var KnownDomains = []string{
	"Software Engineering",
	"Data Science",
	"Marketing",
	"Finance",
	"Healthcare",
	"Education",
}

var skillsByDomain = map[string][]string{
	"Software Engineering": {
		"Python", "JavaScript", "Java", "C++", "React", "Node.js",
		"Git", "Docker", "Kubernetes", "AWS", "Algorithms", "Data Structures",
	},
	"Data Science": {
		"Python", "R", "Machine Learning", "Deep Learning", "SQL",
		"TensorFlow", "PyTorch", "Pandas", "NumPy", "Statistics", "Matplotlib",
	},
	"Marketing": {
		"Digital Marketing", "SEO", "Google Analytics", "Content Marketing",
		"Social Media", "PPC", "Email Marketing", "Brand Management",
	},
	"Finance": {
		"Financial Analysis", "Excel", "Bloomberg Terminal", "Risk Management",
		"Portfolio Management", "Financial Modeling", "Accounting", "Valuation",
	},
	"Healthcare": {
		"Clinical Research", "Medical Knowledge", "Patient Care",
		"Healthcare Regulations", "EMR Systems", "Medical Terminology",
	},
	"Education": {
		"Curriculum Development", "Classroom Management", "Educational Technology",
		"Assessment", "Student Engagement", "Learning Management Systems",
	},
}

var genericSkills = []string{
	"Communication", "Problem Solving", "Team Work",
	"Leadership", "Project Management", "Critical Thinking",
}

// SkillsFor returns the skill list for a domain label. Unrecognized labels
// get the generic list, so the result is never empty. The returned slice is a
// copy; callers may reorder it freely.
func SkillsFor(label string) []string {
	skills, ok := skillsByDomain[label]
	if !ok {
		skills = genericSkills
	}
	out := make([]string, len(skills))
	copy(out, skills)
	return out
}
