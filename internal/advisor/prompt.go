package advisor

import (
	"fmt"
	"strings"
)

const noteSystemPrompt = `You are a student-success advisor at a higher-education institution.
You write short, factual notes that help a counselor prepare for a conversation with a student
flagged by a dropout-risk model.

Rules:
- Use only the facts given. Never invent grades, names or circumstances.
- Be supportive and concrete. Avoid labelling the student.
- The summary is two or three sentences.
- Give between one and five talking points, each a single sentence.
- Respond with JSON matching the provided schema.`

func buildNoteUserMessage(in Input) string {
	var b strings.Builder

	b.WriteString("Student profile:\n")
	for _, kv := range in.Profile {
		fmt.Fprintf(&b, "- %s: %s\n", kv[0], kv[1])
	}

	fmt.Fprintf(&b, "\nEstimated dropout probability: %.2f (%s)\n",
		in.Report.Assessment.Probability, in.Report.Assessment.Bucket.DisplayName())

	if len(in.Report.Factors) > 0 {
		b.WriteString("\nFactors identified:\n")
		for _, f := range in.Report.Factors {
			fmt.Fprintf(&b, "- %s\n", f)
		}
	}

	if len(in.Programs) > 0 {
		b.WriteString("\nRecommended support programs:\n")
		for _, p := range in.Programs {
			fmt.Fprintf(&b, "- %s\n", p)
		}
	}

	b.WriteString("\nWrite the counselor note.")
	return b.String()
}
