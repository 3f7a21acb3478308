package llm

import (
	"context"
)

type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// systemInstruction is sent with every request; repair prompts rely on the
// model answering with a single JSON object.
const systemInstruction = "You repair knowledge-base fact statements. Answer with one JSON object and nothing else."

const maxTokens = 512
