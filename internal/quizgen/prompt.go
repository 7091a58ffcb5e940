package quizgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/storyquiz/internal/story"
)

const candidateSystemPrompt = `You help a young child answer comprehension questions about a picture book they just read.

Rules:
- Propose up to 3 short candidate answers to the question, best first. Each answer is a phrase of a few words, not a sentence.
- For every candidate, quote the story detail that supports it in the evidence field.
- Propose 3-4 distractor phrases: answers that sound plausible to a child but are clearly wrong for this story.
- Answers about a place should start with "in", "on" or "at".
- Use only the story facts and brief you are given. Do not invent characters, places or events.
- If the facts cannot answer the question, set not_answerable to true and leave the candidate list empty.
- Keep all language simple and friendly for ages 4-8.`

const repairSystemPrompt = `You write wrong answers for a child's multiple-choice question about a picture book.

Rules:
- Produce exactly 6 short wrong answer phrases for the given question.
- Each must be clearly wrong for this story but plausible-sounding to a child.
- None may repeat or paraphrase the correct answer.
- Match the shape of the question: wrong places for a "where" question, wrong characters for a "who" question, and so on.
- Keep every phrase under 6 words, friendly for ages 4-8.`

// buildCandidateMessage formats the question, brief and facts for the
// candidate-generation call.
func buildCandidateMessage(question, brief string, facts story.Facts) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Question: %s\n", question)
	fmt.Fprintf(&b, "\nStory brief:\n%s\n", brief)

	b.WriteString("\nStory facts:\n")
	writeFactList(&b, "Characters", facts.Characters)
	writeFactList(&b, "Places", facts.Places)
	writeFactList(&b, "Objects", facts.Objects)
	writeFactList(&b, "Events", facts.Events)
	fmt.Fprintf(&b, "Setting: %s\n", facts.Setting)

	return b.String()
}

// buildRepairMessage formats the repair request for more wrong answers.
func buildRepairMessage(question, brief, correctAnswer string, facts story.Facts) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Question: %s\n", question)
	fmt.Fprintf(&b, "Correct answer (do not repeat it): %s\n", correctAnswer)
	fmt.Fprintf(&b, "\nStory brief:\n%s\n", brief)

	b.WriteString("\nStory facts:\n")
	writeFactList(&b, "Characters", facts.Characters)
	writeFactList(&b, "Places", facts.Places)
	fmt.Fprintf(&b, "Setting: %s\n", facts.Setting)

	return b.String()
}

func writeFactList(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		fmt.Fprintf(b, "%s: none\n", label)
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, strings.Join(items, ", "))
}
