package resume

import (
	"fmt"
	"strings"

	"github.com/tonypottakkal/verba-resume-journal/internal/conversation"
	"github.com/tonypottakkal/verba-resume-journal/internal/ranking"
	"github.com/tonypottakkal/verba-resume-journal/internal/types"
)

// buildSearchQuery turns job requirements into a keyword query over the
// journal. Skills dominate the query; the role description adds context
// terms.
func buildSearchQuery(req *types.JobRequirements) string {
	parts := make([]string, 0, len(req.RequiredSkills)+len(req.PreferredSkills)+1)
	parts = append(parts, req.RequiredSkills...)
	parts = append(parts, req.PreferredSkills...)
	if req.RoleDescription != "" {
		parts = append(parts, req.RoleDescription)
	}
	return strings.Join(parts, " ")
}

func resumePrompt(req *types.JobRequirements, entries []ranking.Ranked, targetRole, feedback string, priorExchanges []conversation.Message) string {
	var sb strings.Builder

	sb.WriteString("You are an expert resume writer. Write a tailored resume in Markdown using ONLY the work experiences below as evidence. Do not invent experiences, employers, or dates.\n\n")

	if targetRole != "" {
		fmt.Fprintf(&sb, "Target role: %s\n\n", targetRole)
	}

	sb.WriteString("Job requirements:\n")
	if len(req.RequiredSkills) > 0 {
		fmt.Fprintf(&sb, "- Required skills: %s\n", strings.Join(req.RequiredSkills, ", "))
	}
	if len(req.PreferredSkills) > 0 {
		fmt.Fprintf(&sb, "- Preferred skills: %s\n", strings.Join(req.PreferredSkills, ", "))
	}
	if req.ExperienceLevel != "" {
		fmt.Fprintf(&sb, "- Experience level: %s\n", req.ExperienceLevel)
	}
	for _, r := range req.Responsibilities {
		fmt.Fprintf(&sb, "- Responsibility: %s\n", r)
	}
	sb.WriteString("\n")

	sb.WriteString("Work experiences, most relevant first:\n\n")
	for i, entry := range entries {
		fmt.Fprintf(&sb, "%d. [%s]", i+1, entry.Candidate.Timestamp.Format("2006-01-02"))
		if len(entry.MatchedSkills) > 0 {
			fmt.Fprintf(&sb, " (matches: %s)", strings.Join(entry.MatchedSkills, ", "))
		}
		fmt.Fprintf(&sb, "\n%s\n\n", entry.Candidate.Content)
	}

	if len(priorExchanges) > 0 {
		sb.WriteString("Earlier turns in this refinement session, oldest first. Carry forward what the user asked for and improve on the previous drafts:\n\n")
		for _, msg := range priorExchanges {
			switch msg.Role {
			case conversation.RoleUser:
				fmt.Fprintf(&sb, "User asked:\n%s\n\n", msg.Content)
			case conversation.RoleAssistant:
				fmt.Fprintf(&sb, "Previous draft:\n%s\n\n", msg.Content)
			}
		}
	}

	if feedback != "" {
		fmt.Fprintf(&sb, "Apply this feedback from the previous version:\n%s\n\n", feedback)
	}

	sb.WriteString("Structure the resume with a professional summary, a skills section grouped by the matched requirements, and an experience section with achievement-oriented bullet points. Emphasize the required skills wherever the evidence supports them.")

	return sb.String()
}
