package narrative

import (
	"fmt"
	"strings"

	"crisis-insights-backend/models"
)

const analystSystemPrompt = "You are an AI crisis analyst specializing in global humanitarian situations."

func buildReportPrompt(r *models.CrisisRegion) string {
	return fmt.Sprintf(`Please analyze the following crisis region and provide a comprehensive report:

Region: %s
Country: %s
Type: %s
Displaced: %d
Casualties: %d
Health Status: %s
Severity Level: %d/10
Affected Population: %d
Resources Needed: %s

Generate a structured report with the following sections:
1. Overview: A comprehensive summary of the crisis situation (3-4 paragraphs)
2. Health Impact: Analysis of health conditions, disease risks, and medical needs (2-3 paragraphs)
3. Timeline: Major events and how the situation has evolved (2-3 paragraphs)
4. Recommendations: Suggest actionable steps for humanitarian response (1-2 paragraphs)

Format the output as a JSON object with the following structure:
{
  "overview": "...",
  "health_impact": "...",
  "timeline": "...",
  "recommendations": "..."
}

Be factual, informative, and analytical. Focus on humanitarian aspects, not political positions.`,
		r.Region,
		r.Country,
		r.Type,
		r.Displaced,
		r.Casualties,
		r.HealthStatus,
		r.SeverityLevel,
		r.AffectedPopulation,
		strings.Join(r.ResourcesNeeded, ", "),
	)
}

func buildComparePrompt(a, b *models.CrisisRegion) string {
	return fmt.Sprintf(`Compare and contrast these two crisis regions:

Region A: %s, %s (%s)
- Displaced: %d
- Casualties: %d
- Severity: %d/10

Region B: %s, %s (%s)
- Displaced: %d
- Casualties: %d
- Severity: %d/10

Provide a brief analysis (2-3 sentences) of how these crises are similar or different.
Focus on humanitarian aspects, patterns, causes, or impacts.`,
		a.Region, a.Country, a.Type, a.Displaced, a.Casualties, a.SeverityLevel,
		b.Region, b.Country, b.Type, b.Displaced, b.Casualties, b.SeverityLevel,
	)
}
