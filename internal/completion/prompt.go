package completion

import (
	"strings"

	"github.com/tbourn/go-telegram-relay/internal/config"
)

// BuildPrompt composes the single prompt string sent to the completion
// service: the mode-specific rule preamble, the grounding corpus verbatim
// when present, and the literal user text. The user text is never altered;
// callers rely on it appearing verbatim in the request body.
func BuildPrompt(mode config.PromptMode, project, corpusText, userText string) string {
	var b strings.Builder

	b.WriteString(preamble(mode, project))

	if corpusText != "" {
		b.WriteString("\n\nReference document:\n")
		b.WriteString(corpusText)
	}

	b.WriteString("\n\nUser question:\n")
	b.WriteString(userText)
	b.WriteString("\n")

	return b.String()
}

// preamble returns the fixed instruction block for the given prompt mode.
func preamble(mode config.PromptMode, project string) string {
	switch mode {
	case config.PromptModeOpen:
		return "You are a helpful assistant for the " + project + " community.\n\n" +
			"RULES:\n" +
			"- Keep answers clear, concise, and factual.\n" +
			"- If you genuinely cannot answer, respond with EXACTLY: " + Sentinel

	case config.PromptModeGrounded:
		return "You are an OFFICIAL assistant for the " + project + " project.\n\n" +
			"STRICT RULES:\n" +
			"- Answer ONLY using the reference document below.\n" +
			"- If the answer is not in the document, respond with EXACTLY: " + Sentinel + "\n" +
			"- Do NOT use outside knowledge.\n" +
			"- Do NOT answer personal or unrelated topics.\n" +
			"- Keep answers clear, factual, and project-focused."

	default: // config.PromptModeProject
		return "You are an OFFICIAL assistant for the " + project + " project.\n\n" +
			"STRICT RULES:\n" +
			"- Answer ONLY questions related to " + project + ".\n" +
			"- If the question is NOT related, respond with EXACTLY: " + Sentinel + "\n" +
			"- Do NOT answer general knowledge questions.\n" +
			"- Do NOT answer personal or unrelated topics.\n" +
			"- Keep answers clear, factual, and project-focused."
	}
}
