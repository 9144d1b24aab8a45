// File: internal/services/assistant/context.go
package assistant

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/carelink/carelink-server/internal/domain"
)

// PatientContext is the bounded slice of the record the assistant sees:
// the patient row, the most recent visits and reports, and the most recent
// chat turns. Each group comes from an independent query, so the assembled
// context can be inconsistent if records change mid-request.
type PatientContext struct {
	Patient  *domain.Patient
	Visits   []domain.Visit
	Reports  []domain.Report
	Messages []domain.ChatMessage
}

// truncateRunes caps a UTF-8 string at maxLen runes, appending an ellipsis
// marker when anything was cut.
func truncateRunes(input string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(input) <= maxLen {
		return input
	}
	var b strings.Builder
	count := 0
	for _, r := range input {
		if count >= maxLen {
			break
		}
		b.WriteRune(r)
		count++
	}
	b.WriteString("...")
	return b.String()
}

// renderPatientInfo emits the fixed patient identity section.
func renderPatientInfo(p *domain.Patient) string {
	var b strings.Builder
	b.WriteString("Patient Info:\n")
	fmt.Fprintf(&b, "- Name: %s\n", p.Name)
	fmt.Fprintf(&b, "- Date of Birth: %s\n", p.DOB)
	fmt.Fprintf(&b, "- Preferred Language: %s\n", p.PreferredLanguage)
	return b.String()
}

// renderVisits emits one line per visit in fixed field order. Absent
// measurements are simply omitted.
func renderVisits(visits []domain.Visit) string {
	var b strings.Builder
	b.WriteString("Recent Health Visits:\n")
	for _, v := range visits {
		fmt.Fprintf(&b, "\n• Visit on %s:", v.VisitDate)
		if v.BloodPressure != nil {
			fmt.Fprintf(&b, " Blood pressure: %s.", *v.BloodPressure)
		}
		if v.OxygenLevel != nil {
			fmt.Fprintf(&b, " Oxygen level: %g%%.", *v.OxygenLevel)
		}
		if v.SugarLevel != nil {
			fmt.Fprintf(&b, " Blood sugar: %g mg/dL.", *v.SugarLevel)
		}
		if v.DoctorRecommendation != nil {
			fmt.Fprintf(&b, " Doctor's recommendation: %s.", *v.DoctorRecommendation)
		}
	}
	return b.String()
}

// renderReports emits one line per report, quoting at most excerptRunes of
// the content.
func renderReports(reports []domain.Report, excerptRunes int) string {
	var b strings.Builder
	b.WriteString("Uploaded Health Reports:")
	for _, r := range reports {
		fmt.Fprintf(&b, "\n• %s: %s", r.ReportDate, truncateRunes(r.ReportContent, excerptRunes))
	}
	return b.String()
}

// renderChatHistory emits the conversation oldest to newest.
func renderChatHistory(messages []domain.ChatMessage) string {
	var b strings.Builder
	b.WriteString("Recent Chat History:\n")
	for _, m := range messages {
		role := "AI"
		if m.Sender == domain.ChatSenderUser {
			role = "User"
		}
		fmt.Fprintf(&b, "\n%s: %s", role, m.Message)
	}
	return b.String()
}
