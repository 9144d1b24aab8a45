// File: internal/services/assistant/prompt.go
package assistant

import (
	"fmt"
	"strings"
)

// System personas. Kept short; the detailed grounding instructions travel
// in the user prompt so the patient record stays next to them.
const (
	chatSystemPrompt = "You are a warm and gentle medical assistant who explains health information in simple, caring words."

	directSystemPrompt = "You are a multilingual medical assistant."

	trendSystemPrompt = "You are a careful medical assistant who turns vital-sign trends into short, practical lifestyle recommendations."

	summarySystemPrompt = "You are a clinical assistant who writes brief, factual pre-appointment summaries for doctors."

	jokeSystemPrompt = "You are a cheerful assistant."
)

const chatInstructions = `You are a friendly and caring AI healthcare assistant.
When you answer, ALWAYS consider the patient's own health history, doctor notes, and reports first.
If the patient's health information does not mention any restrictions, you can say it seems fine based on available data, but kindly remind the patient that it is always best to double-check with their doctor.
Always answer in the patient's preferred language.`

// buildChatPrompt concatenates the context sections in fixed order —
// patient identity, visit history, report history, chat history, then the
// new question — so the model's attention stays anchored on the newest
// information.
func buildChatPrompt(pc *PatientContext, question string, cfg *Config) string {
	var b strings.Builder
	b.WriteString(chatInstructions)
	b.WriteString("\n\n")
	b.WriteString(renderPatientInfo(pc.Patient))
	b.WriteString("\n")
	b.WriteString(renderVisits(pc.Visits))
	b.WriteString("\n\n")
	b.WriteString(renderReports(pc.Reports, cfg.ReportExcerptRunes))
	b.WriteString("\n\n")
	b.WriteString(renderChatHistory(pc.Messages))
	fmt.Fprintf(&b, "\n\nPatient's new question: %s\n\nAnswer:", question)
	return b.String()
}

// buildTrendPrompt renders the patient's vital-sign history and asks for a
// JSON object with one recommendation per tracked vital.
func buildTrendPrompt(pc *PatientContext) string {
	var b strings.Builder
	b.WriteString("Below is a patient's recent vital-sign history.\n\n")
	b.WriteString(renderPatientInfo(pc.Patient))
	b.WriteString("\n")
	b.WriteString(renderVisits(pc.Visits))
	b.WriteString("\n\nBased on these trends, reply with a JSON object and nothing else, using exactly these keys:\n")
	b.WriteString(`{"blood_pressure": "...", "oxygen_level": "...", "sugar_level": "..."}`)
	b.WriteString("\nEach value is one short recommendation sentence for the patient.")
	return b.String()
}

// buildSummaryPrompt asks for a short clinical summary ahead of an
// appointment.
func buildSummaryPrompt(pc *PatientContext, cfg *Config) string {
	var b strings.Builder
	b.WriteString("Write a short summary of this patient's recent health for their doctor to read before an appointment. Use plain prose, at most five sentences.\n\n")
	b.WriteString(renderPatientInfo(pc.Patient))
	b.WriteString("\n")
	b.WriteString(renderVisits(pc.Visits))
	b.WriteString("\n\n")
	b.WriteString(renderReports(pc.Reports, cfg.ReportExcerptRunes))
	return b.String()
}

const transcriptSummaryPrompt = "Summarize the following visit recording transcript in a few sentences for the patient's record:\n\n%s"

const imageSummaryPrompt = "Describe and summarize this medical document or image for the patient's record. Mention any values, findings, or instructions visible."

const jokePrompt = "Tell me one short, family-friendly joke about healthy habits. Reply with just the joke."

// Fixed fallback recommendations, substituted per key when the model's
// trend response does not parse as JSON. The request still succeeds.
var trendFallback = TrendAdvice{
	BloodPressure: "Keep logging your blood pressure and review the readings with your doctor at your next visit.",
	OxygenLevel:   "Keep an eye on your oxygen readings and contact your doctor if they drop below your usual range.",
	SugarLevel:    "Keep tracking your blood sugar and go over the numbers with your doctor.",
}
