package repair

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/factscreen/internal/config"
	"github.com/agenthands/factscreen/internal/core/common"
	"github.com/agenthands/factscreen/internal/core/model"
	"github.com/agenthands/factscreen/internal/core/validate"
	"github.com/agenthands/factscreen/internal/llm"
)

const defaultPrompt = `The following knowledge-base fact does not follow the required syntax Predicate(Argument1, Argument2).
Statement: %s
Rewrite it so it follows the syntax and keeps its meaning.
Return JSON: {"statement": "<rewritten statement>", "reason": "<what you changed>"}`

type suggestion struct {
	Statement string `json:"statement"`
	Reason    string `json:"reason"`
}

// Repairer asks an LLM to rewrite statements that fail validation. Every
// answer is validated again before it is marked Valid.
type Repairer struct {
	LLM     llm.LLMClient
	Prompts config.RepairPrompts
}

func NewRepairer(llmClient llm.LLMClient, prompts config.RepairPrompts) *Repairer {
	return &Repairer{
		LLM:     llmClient,
		Prompts: prompts,
	}
}

// Suggest returns a repair for one statement. Valid statements come back
// unchanged without an LLM call.
func (r *Repairer) Suggest(ctx context.Context, index int, statement string) (model.RepairSuggestion, error) {
	s := model.RepairSuggestion{Index: index, Original: statement}
	if validate.Validate(statement) {
		s.Statement = statement
		s.Valid = true
		return s, nil
	}

	prompt := r.Prompts.Statement
	if strings.TrimSpace(prompt) == "" {
		prompt = defaultPrompt
	}

	response, err := r.LLM.Generate(ctx, fmt.Sprintf(prompt, statement))
	if err != nil {
		return s, fmt.Errorf("failed to generate repair: %w", err)
	}

	parsed, err := common.ParseJSON[suggestion](response)
	if err != nil {
		return s, fmt.Errorf("failed to parse repair: %w", err)
	}

	s.Statement = strings.TrimSpace(parsed.Statement)
	s.Reason = parsed.Reason
	s.Valid = validate.Validate(s.Statement)
	return s, nil
}

// SuggestBatch repairs every invalid statement. Per-statement failures are
// recorded on the suggestion; only context cancellation aborts the batch.
func (r *Repairer) SuggestBatch(ctx context.Context, statements []string) ([]model.RepairSuggestion, error) {
	out := make([]model.RepairSuggestion, 0)
	for i, st := range statements {
		if validate.Validate(st) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s, err := r.Suggest(ctx, i, st)
		if err != nil {
			s.Error = err.Error()
		}
		out = append(out, s)
	}
	return out, nil
}
