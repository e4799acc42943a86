package chat

import (
	"fmt"
	"strings"

	"github.com/abhishekkumawat-47/bajaj-chatbot/docstore"
)

// BuildPrompt concatenates the instruction header, the numbered documents, and
// the verbatim user question into the single string sent to the provider.
// Assembly is deterministic: the same documents and question always produce a
// byte-identical prompt. No truncation is applied; oversized input is the
// provider's problem to refuse.
func BuildPrompt(docs []docstore.Document, question string) string {
	var sb strings.Builder

	sb.WriteString("You are a helpful assistant. Based only on the documents below, answer the user's question clearly and concisely.\n")
	sb.WriteString("\nDocuments:\n")
	for i, doc := range docs {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(fmt.Sprintf("Document %d:\n%s", i+1, doc.Content))
	}

	sb.WriteString("\n\nInstructions:\n")
	sb.WriteString("- Give a strictly short answer (2-3 lines max).\n")
	sb.WriteString("- Use simple, conversational language.\n")
	sb.WriteString("- Don't copy the document word-for-word.\n")
	sb.WriteString(fmt.Sprintf("- If unsure, say %q\n", FallbackAnswer))

	sb.WriteString("\nUser Question: ")
	sb.WriteString(question)

	return sb.String()
}
