package advisor

import (
	"fmt"
	"strings"

	"leafline/models"
)

// System prompts, one per task family. Every prompt demands a bare JSON
// object so the orchestrator can parse the reply without scraping prose.
const (
	systemBotanist = `You are an expert botanist and houseplant-care advisor.
Answer with a single JSON object and nothing else: no markdown, no prose
outside the JSON. Use the exact field names requested.`

	systemJournalist = `You are a warm, observant plant-journal writer. You turn
a care event and a photo into a short narrative entry a hobbyist would enjoy
re-reading. Answer with a single JSON object and nothing else.`

	systemVerifier = `You are a plant identification verifier. Compare the
photographed plant against the expected species and answer with a single JSON
object and nothing else.`
)

// buildPrompt assembles the system prompt, user prompt and model hints for a
// task. When degraded is set (growth analysis retry without images) the
// prompt explicitly discloses that images were unavailable.
func buildPrompt(task Task, degraded bool) (system, user string) {
	switch task.Kind {
	case KindIdentify:
		return systemBotanist, `Identify the plant in the photo. Respond with JSON fields:
"name", "scientificName", "description", "confidenceLevel" (low|medium|high),
"careLevel" (low|medium|high), "waterFrequencyDays" (number),
"fertilizerFrequencyDays" (number), "lightRequirement", "toxicity".`

	case KindDiagnose:
		var b strings.Builder
		b.WriteString(`Diagnose the plant health problem visible in the photo.`)
		if task.Plant != nil {
			b.WriteString("\n" + plantSnapshot(task.Plant))
		}
		b.WriteString(`
Respond with JSON fields: "issue", "cause", "solution",
"preventionTips" (array of strings), "severity" (low|medium|high),
"confidenceLevel" (low|medium|high).`)
		return systemBotanist, b.String()

	case KindPersonalizedAdvice:
		var b strings.Builder
		b.WriteString("Give personalized care advice for this plant.\n")
		b.WriteString(plantSnapshot(task.Plant))
		if task.Environment != "" {
			b.WriteString("\nEnvironment: " + task.Environment)
		}
		if task.HistoryDigest != "" {
			b.WriteString("\nRecent care history:\n" + task.HistoryDigest)
		}
		b.WriteString(`
Respond with JSON fields: "summary", "immediateActions" (array),
"shortTermActions" (array), "longTermActions" (array), "problems" (array),
"confidenceLevel" (low|medium|high).`)
		return systemBotanist, b.String()

	case KindSeasonalGuide:
		var b strings.Builder
		season := task.Season
		if season == "" {
			season = "the current season"
		}
		fmt.Fprintf(&b, "Write a seasonal care guide for %s", season)
		if task.Location != "" {
			fmt.Fprintf(&b, " in %s", task.Location)
		}
		b.WriteString(".\nThe collection:\n")
		b.WriteString(collectionDigest(task.Plants))
		b.WriteString(`
Respond with JSON fields: "season", "plants" (array of
{"name", "adjustments" (array)}), "generalTips" (array),
"confidenceLevel" (low|medium|high).`)
		return systemBotanist, b.String()

	case KindArrangement:
		var b strings.Builder
		b.WriteString("Suggest an arrangement for this plant collection:\n")
		b.WriteString(collectionDigest(task.Plants))
		b.WriteString(`
Respond with JSON fields: "suggestions" (array of strings),
"designNotes", "confidenceLevel" (low|medium|high).`)
		return systemBotanist, b.String()

	case KindJournalEntry:
		var b strings.Builder
		b.WriteString("Write a journal entry for this care event.\n")
		b.WriteString(plantSnapshot(task.Plant))
		if task.Log != nil {
			fmt.Fprintf(&b, "\nEvent: %s on %s", task.Log.CareType, task.Log.Timestamp.Format("2006-01-02"))
			if task.Log.Notes != "" {
				b.WriteString("\nOwner notes: " + task.Log.Notes)
			}
		}
		if task.HistoryDigest != "" {
			b.WriteString("\nRecent care history (most recent first):\n" + task.HistoryDigest)
		}
		b.WriteString(`
Respond with JSON fields: "title", "observations" (array of strings),
"growthProgress", "healthNotes", "nextSteps" (array of strings).`)
		return systemJournalist, b.String()

	case KindGrowthAnalysis:
		var b strings.Builder
		if degraded {
			b.WriteString(`The comparison photos were unavailable, so base your
analysis on the care profile alone and say so in the assessment.` + "\n")
		} else {
			b.WriteString("Compare the photos (oldest first, newest last) and analyze the plant's growth.\n")
		}
		b.WriteString(plantSnapshot(task.Plant))
		b.WriteString(`
Respond with JSON fields: "assessment", "growthRate",
"issues" (array), "recommendations" (array),
"confidenceLevel" (low|medium|high).`)
		return systemBotanist, b.String()

	case KindCareAnswer:
		var b strings.Builder
		b.WriteString("Answer this plant-care question.\n")
		if task.Plant != nil {
			b.WriteString(plantSnapshot(task.Plant) + "\n")
		}
		b.WriteString("Question: " + task.Question)
		b.WriteString(`
Respond with JSON fields: "answer", "tips" (array of strings),
"confidenceLevel" (low|medium|high).`)
		return systemBotanist, b.String()

	case KindOptimizedSchedule:
		var b strings.Builder
		b.WriteString("Build an optimized weekly care schedule for this collection:\n")
		b.WriteString(collectionDigest(task.Plants))
		if task.Availability != "" {
			b.WriteString("\nOwner availability: " + task.Availability)
		}
		b.WriteString(`
Respond with JSON fields: "days" (array of {"day", "tasks" (array)}),
"tips" (array of strings), "notes".`)
		return systemBotanist, b.String()

	case KindCommunityInsights:
		var b strings.Builder
		b.WriteString("Summarize care insights other growers report")
		if task.Topic != "" {
			b.WriteString(" about " + task.Topic)
		}
		if task.Plant != nil {
			b.WriteString(".\n" + plantSnapshot(task.Plant))
		}
		b.WriteString(`
Respond with JSON fields: "insights" (array of strings),
"trendingTopics" (array of strings), "confidenceLevel" (low|medium|high).`)
		return systemBotanist, b.String()

	case KindIdentityVerify:
		var b strings.Builder
		fmt.Fprintf(&b, "The owner says this plant is %q", task.ExpectedName)
		if task.ExpectedScientificName != "" {
			fmt.Fprintf(&b, " (%s)", task.ExpectedScientificName)
		}
		b.WriteString(`. Does the photo show that species?
Respond with JSON fields: "matches" (boolean),
"confidence" (low|medium|high), "detectedPlant" (the species you actually
see; empty string when it matches).`)
		return systemVerifier, b.String()
	}

	return systemBotanist, "Respond with a single JSON object."
}

// plantSnapshot formats the care-relevant parts of a plant for a prompt.
func plantSnapshot(p *models.Plant) string {
	if p == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Plant: %s", p.Name)
	if p.ScientificName != "" {
		fmt.Fprintf(&b, " (%s)", p.ScientificName)
	}
	fmt.Fprintf(&b, "\nWatering every %d days", p.WaterFrequencyDays)
	if p.FertilizerFrequencyDays > 0 {
		fmt.Fprintf(&b, ", fertilizing every %d days", p.FertilizerFrequencyDays)
	}
	if p.LastWateredAt != nil {
		fmt.Fprintf(&b, "\nLast watered: %s", p.LastWateredAt.Format("2006-01-02"))
	}
	if p.Location != "" {
		fmt.Fprintf(&b, "\nLocation: %s", p.Location)
	}
	if p.LightCondition != "" {
		fmt.Fprintf(&b, "\nLight: %s", p.LightCondition)
	}
	if p.PotSize != "" {
		fmt.Fprintf(&b, "\nPot: %s", p.PotSize)
	}
	if p.Notes != "" {
		fmt.Fprintf(&b, "\nOwner notes: %s", p.Notes)
	}
	return b.String()
}

// collectionDigest formats a plant collection as one line per plant. Batch
// tasks are single aggregate calls, so the whole collection rides in one
// prompt.
func collectionDigest(plants []models.Plant) string {
	if len(plants) == 0 {
		return "(no plants)"
	}
	var b strings.Builder
	for _, p := range plants {
		fmt.Fprintf(&b, "- %s", p.Name)
		if p.ScientificName != "" {
			fmt.Fprintf(&b, " (%s)", p.ScientificName)
		}
		fmt.Fprintf(&b, ": water every %d days", p.WaterFrequencyDays)
		if p.FertilizerFrequencyDays > 0 {
			fmt.Fprintf(&b, ", fertilize every %d days", p.FertilizerFrequencyDays)
		}
		if p.Location != "" {
			fmt.Fprintf(&b, ", %s", p.Location)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
