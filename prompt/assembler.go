// Package prompt builds the text sent to the generative model from intake
// data, cached assessments, and bounded chat history.
package prompt

import (
	"fmt"
	"strings"

	"github.com/babynest/assistant/domain"
)

// ConfidenceInstruction must appear verbatim in every prompt. Downstream
// consumers parse the bracketed percentages out of model replies.
const ConfidenceInstruction = "IMPORTANT: When providing assessments or identifying conditions, always include accuracy/confidence ratings in brackets like [XX% match], [XX% confidence], or [XX% likely]."

const assessmentPreamble = `You are a pediatric health AI assistant who is trying to provide assistance
to new parents regarding their child and its health. When speaking to the parents,
remember to be respectful, sounding caring/genuine, and calming because they are more likely already nervous.
Please analyze the provided information about a baby and give a preliminary health assessment and keep responses concise/to the point
while adhering to the below.

IMPORTANT DISCLAIMERS:
- This is NOT an official medical diagnosis
- Always recommend consulting a pediatrician for any health concerns
- If symptoms suggest urgent care is needed, clearly state this

` + ConfidenceInstruction + `

ACCURACY RATING REQUIREMENT:
- For each possible condition or assessment you mention, include a confidence/accuracy rating in brackets
- Use percentages like [85% match], [72% confidence], [90% likely], etc.
- Base ratings on how well the symptoms align with typical presentations
- Be conservative with high percentages (90%+) and use them only for very clear symptom matches
- Use lower percentages (50-70%) when symptoms are ambiguous or could indicate multiple conditions

Baby Information:
`

const assessmentClosing = `
Please provide:
1. A preliminary assessment of the symptoms with accuracy ratings [XX% match/confidence/likely]
2. Possible explanations (common, benign causes first) with confidence levels [XX%]
3. Warning signs that would require immediate medical attention
4. General care recommendations
5. When to contact a pediatrician

EXAMPLES of how to include accuracy ratings:
- "This appears to be normal infant skin irritation [82% match]"
- "Possible diaper rash [75% likely] based on the described symptoms"
- "The fever pattern suggests a viral infection [68% confidence]"

If an image is provided, please analyze any visible symptoms or conditions and include accuracy ratings for your visual assessment.

Keep your response clear, reassuring when appropriate, but always err on the side of caution regarding baby health.
`

const followupPreamble = `You are continuing a conversation about a baby's health.

` + ConfidenceInstruction + `

PREVIOUS ASSESSMENT CONTEXT:
`

const followupClosing = `
Please respond to the user's question while maintaining context of the baby's condition and previous conversation.
Continue to emphasize that this is not medical advice and recommend consulting a pediatrician when appropriate.
REMEMBER: Include accuracy/confidence ratings in brackets [XX%] for any medical assessments or condition identifications.

EXAMPLES:
- "That symptom could indicate teething [75% likely]"
- "The described behavior is typical for this age [88% normal]"
- "This might be a growth spurt [70% confidence]"
`

// FieldLabels maps intake fields to the label rendered in front of them.
// Source variants disagreed on wording (e.g. "Age" vs a generic number
// label), so labels are configuration, not code paths.
type FieldLabels struct {
	Locations   string
	FeedingType string
	StoolColor  string
	AgeMonths   string
	Duration    string
	Temperature string
	ExtraNotes  string
}

// DefaultFieldLabels are the labels used by the original assessment form.
func DefaultFieldLabels() FieldLabels {
	return FieldLabels{
		Locations:   "Affected body areas",
		FeedingType: "Feeding type",
		StoolColor:  "Stool color",
		AgeMonths:   "Age (in months)",
		Duration:    "Duration",
		Temperature: "Temperature",
		ExtraNotes:  "Additional notes",
	}
}

// Assembler renders deterministic prompts with a bounded history window.
type Assembler struct {
	labels        FieldLabels
	historyWindow int
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithFieldLabels overrides the intake field labels.
func WithFieldLabels(labels FieldLabels) Option {
	return func(a *Assembler) { a.labels = labels }
}

// WithHistoryWindow bounds how many recent chat exchanges a follow-up
// prompt may include.
func WithHistoryWindow(n int) Option {
	return func(a *Assembler) { a.historyWindow = n }
}

// NewAssembler creates an Assembler with the default labels and a window of 5.
func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{
		labels:        DefaultFieldLabels(),
		historyWindow: 5,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// HistoryWindow returns the configured history bound.
func (a *Assembler) HistoryWindow() int {
	return a.historyWindow
}

// BuildAssessmentPrompt renders the initial assessment prompt from intake
// data. Empty fields are omitted entirely; field order is fixed.
// historicalContext, when non-empty, is a truncated prior assessment for
// repeat submissions to the same session.
func (a *Assembler) BuildAssessmentPrompt(intake *domain.Intake, historicalContext string) string {
	var b strings.Builder
	b.WriteString(assessmentPreamble)
	a.writeIntakeFields(&b, intake, "• ")
	if historicalContext != "" {
		fmt.Fprintf(&b, "\nPREVIOUS ASSESSMENTS FOR THIS BABY:\n%s\n", historicalContext)
	}
	b.WriteString(assessmentClosing)
	return b.String()
}

// BuildFollowupPrompt renders a follow-up prompt: cached initial assessment,
// non-empty intake fields, the most recent chat exchanges (oldest first,
// bounded by the history window), and the new user question. recentChats
// beyond the window are dropped from the prompt, never from storage.
func (a *Assembler) BuildFollowupPrompt(session *domain.Session, recentChats []domain.Exchange, userMessage string) string {
	if len(recentChats) > a.historyWindow {
		recentChats = recentChats[len(recentChats)-a.historyWindow:]
	}

	var b strings.Builder
	b.WriteString(followupPreamble)
	b.WriteString(session.InitialAssessment)
	b.WriteString("\n\nBABY INFORMATION:\n")
	a.writeIntakeFields(&b, session.Intake, "• ")

	b.WriteString("\nRECENT CHAT HISTORY:\n")
	for _, ex := range recentChats {
		fmt.Fprintf(&b, "User: %s\n", ex.UserMessage)
		fmt.Fprintf(&b, "Assistant: %s\n", ex.Response)
	}

	fmt.Fprintf(&b, "\nCURRENT USER QUESTION: %s\n", userMessage)
	b.WriteString(followupClosing)
	return b.String()
}

// writeIntakeFields renders present intake fields in the fixed order:
// locations, feeding, stool, age, duration, temperature, notes.
func (a *Assembler) writeIntakeFields(b *strings.Builder, intake *domain.Intake, bullet string) {
	if intake == nil {
		return
	}
	if len(intake.Locations) > 0 {
		fmt.Fprintf(b, "%s%s: %s\n", bullet, a.labels.Locations, strings.Join(intake.Locations, ", "))
	}
	if intake.FeedingType != "" {
		fmt.Fprintf(b, "%s%s: %s\n", bullet, a.labels.FeedingType, intake.FeedingType)
	}
	if intake.StoolColor != "" {
		fmt.Fprintf(b, "%s%s: %s\n", bullet, a.labels.StoolColor, intake.StoolColor)
	}
	if intake.AgeMonths != "" {
		fmt.Fprintf(b, "%s%s: %s\n", bullet, a.labels.AgeMonths, intake.AgeMonths)
	}
	if intake.Duration != "" {
		fmt.Fprintf(b, "%s%s: %s\n", bullet, a.labels.Duration, intake.Duration)
	}
	if intake.TemperatureText != "" {
		fmt.Fprintf(b, "%s%s: %s °C (Celsius)\n", bullet, a.labels.Temperature, intake.TemperatureText)
	}
	if intake.ExtraNotes != "" {
		fmt.Fprintf(b, "%s%s: %s\n", bullet, a.labels.ExtraNotes, intake.ExtraNotes)
	}
}
