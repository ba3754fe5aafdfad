package profile

import "strings"

const (
	SuggestionBasicInfo    = "Complete your basic information to get started"
	SuggestionMoreSkills   = "Add more skills to improve your profile strength"
	SuggestionCertificates = "Add certificates to showcase your expertise"
	SuggestionProjects     = "Add projects to demonstrate your practical experience"
	SuggestionReact        = "Consider adding React to your skills for frontend development"
	SuggestionBackendTech  = "Add backend technologies like Node.js or Python to your skills"
	SuggestionShowcase     = "Create projects to showcase your skills in action"
	SuggestionComplete     = "Great job! Your profile looks complete. Consider adding more projects or skills to stand out."

	GoalFrontend = "Frontend Developer"
	GoalBackend  = "Backend Developer"

	// Below these counts the profile gets nudged to add more.
	minSkills   = 5
	minProjects = 2
)

type suggestionRule struct {
	applies func(*Profile) bool
	message string
}

// Rules are independent; their order is the display order.
var suggestionRules = []suggestionRule{
	{func(p *Profile) bool { return p.BasicInfo.FullName == "" }, SuggestionBasicInfo},
	{func(p *Profile) bool { return len(p.Skills) < minSkills }, SuggestionMoreSkills},
	{func(p *Profile) bool { return len(p.Certificates) == 0 }, SuggestionCertificates},
	{func(p *Profile) bool { return len(p.Projects) < minProjects }, SuggestionProjects},
	{func(p *Profile) bool {
		return p.BasicInfo.CareerGoal == GoalFrontend && !p.hasSkillLike("react")
	}, SuggestionReact},
	{func(p *Profile) bool {
		return p.BasicInfo.CareerGoal == GoalBackend && !p.hasSkillLike("node", "python")
	}, SuggestionBackendTech},
	{func(p *Profile) bool { return len(p.Skills) > 0 && len(p.Projects) == 0 }, SuggestionShowcase},
}

// Suggestions evaluates every rule against p. When none applies the list
// holds the single congratulation message.
func Suggestions(p *Profile) []string {
	out := make([]string, 0, len(suggestionRules))
	for _, r := range suggestionRules {
		if r.applies(p) {
			out = append(out, r.message)
		}
	}
	if len(out) == 0 {
		out = append(out, SuggestionComplete)
	}
	return out
}

// hasSkillLike reports whether any skill contains one of the lowercase needles,
// ignoring case.
func (p *Profile) hasSkillLike(needles ...string) bool {
	for _, s := range p.Skills {
		lower := strings.ToLower(s)
		for _, n := range needles {
			if strings.Contains(lower, n) {
				return true
			}
		}
	}
	return false
}
