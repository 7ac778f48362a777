package prompt

import (
	"fmt"
	"strings"

	"pdf-qa-be/pkg/rag/artifact"
)

// QA builds the retrieval-augmented prompt. The model is told to answer
// only from the supplied notes.
func QA(context, question string) string {
	var prompt strings.Builder

	prompt.WriteString("\nAnswer ONLY from the notes.\n\n")
	writeNotes(&prompt, context)
	prompt.WriteString("\nQuestion:\n")
	prompt.WriteString(question)
	prompt.WriteString("\n")

	return prompt.String()
}

// Artifact builds the generation prompt for kind over context.
func Artifact(kind artifact.Kind, context string) (string, error) {
	var prompt strings.Builder

	switch kind {
	case artifact.Summary:
		prompt.WriteString("Create a concise bullet-point summary:\n")
		prompt.WriteString(context)
		return prompt.String(), nil
	case artifact.Flashcards:
		writeFlashcardsTask(&prompt)
	case artifact.MCQs:
		writeMCQTask(&prompt)
	default:
		return "", fmt.Errorf("no prompt template for artifact kind %q", kind)
	}

	writeNotes(&prompt, context)
	return prompt.String(), nil
}

func writeNotes(prompt *strings.Builder, context string) {
	prompt.WriteString("Notes:\n")
	prompt.WriteString(context)
	prompt.WriteString("\n")
}

func writeFlashcardsTask(prompt *strings.Builder) {
	prompt.WriteString("\nCreate 10 flashcards from the notes below.\n")
	prompt.WriteString("Format exactly like:\n\n")
	prompt.WriteString("Q: ...\n")
	prompt.WriteString("A: ...\n\n")
}

func writeMCQTask(prompt *strings.Builder) {
	prompt.WriteString("\nCreate 5 multiple choice questions (MCQs) from the notes below.\n")
	prompt.WriteString("Format each question as:\n\n")
	prompt.WriteString("Q: ...\n")
	prompt.WriteString("A) ...\n")
	prompt.WriteString("B) ...\n")
	prompt.WriteString("C) ...\n")
	prompt.WriteString("D) ...\n")
	prompt.WriteString("Answer: <correct option letter>\n\n")
}
