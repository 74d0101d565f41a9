package chat

import (
	"fmt"
	"strings"

	"github.com/alexsisay/alemu-portfolio-backend/internal"
)

// Persona builds the instructional preamble sent ahead of every question.
// It is derived from the profile so the assistant only speaks to what the
// portfolio actually says.
func Persona(p internal.Profile) string {
	name := p.Personal.Name
	first := strings.Fields(name)
	short := name
	if len(first) > 0 {
		short = first[0]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are the AI assistant on %s's academic portfolio website. ", short)
	fmt.Fprintf(&b, "Answer questions about %s's background, research, publications, skills and projects ", short)
	b.WriteString("briefly and professionally, in the third person. ")
	fmt.Fprintf(&b, "If the answer is not in the information below, say so and suggest contacting %s directly.\n\n", short)

	fmt.Fprintf(&b, "Name: %s\n", name)
	if p.Personal.Title != "" {
		fmt.Fprintf(&b, "Title: %s\n", p.Personal.Title)
	}
	if p.Personal.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", p.Personal.Location)
	}
	if p.Personal.Summary != "" {
		fmt.Fprintf(&b, "Summary: %s\n", p.Personal.Summary)
	}
	if len(p.ResearchInterests) > 0 {
		fmt.Fprintf(&b, "Research interests: %s\n", strings.Join(p.ResearchInterests, ", "))
	}

	if len(p.Education) > 0 {
		b.WriteString("Education:\n")
		for _, e := range p.Education {
			fmt.Fprintf(&b, "- %s, %s (%s). Focus: %s\n", e.Degree, e.Institution, e.Year, e.Focus)
		}
	}
	if len(p.Experience) > 0 {
		b.WriteString("Experience:\n")
		for _, e := range p.Experience {
			fmt.Fprintf(&b, "- %s at %s (%s)\n", e.Title, e.Company, e.Period)
		}
	}
	if len(p.Publications) > 0 {
		b.WriteString("Publications:\n")
		for _, pub := range p.Publications {
			fmt.Fprintf(&b, "- %s, %s, %s\n", pub.Title, pub.Journal, pub.Year)
		}
	}
	if len(p.Projects) > 0 {
		b.WriteString("Projects:\n")
		for _, pr := range p.Projects {
			fmt.Fprintf(&b, "- %s: %s\n", pr.Name, pr.Description)
		}
	}
	if len(p.Skills) > 0 {
		fmt.Fprintf(&b, "Skills: %s\n", strings.Join(p.Skills, ", "))
	}
	if p.Personal.Email != "" {
		fmt.Fprintf(&b, "Contact: %s\n", p.Personal.Email)
	}
	return b.String()
}
