package skills

import (
	"strings"

	"github.com/tonypottakkal/verba-resume-journal/internal/types"
)

// categoryTerms holds the known members of each category, used to place a
// skill when the extractor did not supply a usable category.
var categoryTerms = map[types.SkillCategory][]string{
	types.CategoryProgrammingLanguages: {
		"Python", "JavaScript", "TypeScript", "Java", "C++", "C#", "Go", "Rust",
		"Ruby", "PHP", "Swift", "Kotlin", "Scala", "R", "MATLAB", "SQL",
	},
	types.CategoryFrameworks: {
		"React", "Angular", "Vue", "Django", "Flask", "FastAPI", "Spring", "Express",
		"Next.js", "Nuxt.js", "Laravel", "Rails", "ASP.NET", "TensorFlow", "PyTorch",
	},
	types.CategoryDatabases: {
		"PostgreSQL", "MySQL", "MongoDB", "Redis", "Elasticsearch", "Cassandra",
		"DynamoDB", "Oracle", "SQL Server", "Neo4j", "Weaviate", "Pinecone",
	},
	types.CategoryCloudPlatforms: {
		"AWS", "Azure", "GCP", "Heroku", "DigitalOcean", "Vercel", "Netlify",
		"CloudFlare", "IBM Cloud", "Oracle Cloud",
	},
	types.CategoryDevOpsTools: {
		"Docker", "Kubernetes", "Jenkins", "GitLab CI", "GitHub Actions", "Terraform",
		"Ansible", "Chef", "Puppet", "CircleCI", "Travis CI", "ArgoCD",
	},
	types.CategoryDataScience: {
		"Machine Learning", "Deep Learning", "NLP", "Computer Vision", "Data Analysis",
		"Statistical Modeling", "Feature Engineering", "Model Deployment", "MLOps",
	},
	types.CategorySoftSkills: {
		"Leadership", "Communication", "Problem Solving", "Team Collaboration",
		"Project Management", "Agile", "Scrum", "Mentoring", "Technical Writing",
	},
	types.CategoryTools: {
		"Git", "VS Code", "IntelliJ", "Jupyter", "Postman", "Jira", "Confluence",
		"Slack", "Figma", "Adobe XD", "Tableau", "Power BI",
	},
}

// ValidCategory reports whether c is one of the fixed category labels.
func ValidCategory(c types.SkillCategory) bool {
	for _, known := range types.AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Categorize places a canonical skill name into a category by matching it
// against the known category members: exact match first, then substring
// match for longer names ("AWS Lambda" lands in cloud_platforms). Unmatched
// skills fall into CategoryOther.
func Categorize(name string) types.SkillCategory {
	lower := strings.ToLower(name)

	for _, category := range types.AllCategories {
		for _, term := range categoryTerms[category] {
			if lower == strings.ToLower(term) {
				return category
			}
		}
	}

	for _, category := range types.AllCategories {
		for _, term := range categoryTerms[category] {
			termLower := strings.ToLower(term)
			// Short terms like "r" or "go" would match almost anything.
			if len(termLower) >= 4 && strings.Contains(lower, termLower) {
				return category
			}
		}
	}

	return types.CategoryOther
}
