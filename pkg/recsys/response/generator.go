// Package response turns a ranked recommendation result into conversational
// text. The LLM is only used here, never for ranking; when it fails the
// generator falls back to a deterministic template.
package response

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/namhkse/recomending-system/pkg/llm"
	"github.com/namhkse/recomending-system/pkg/recsys/pipeline"
)

const systemPrompt = `You are a helpful product recommendation assistant for an electronics store.
You help customers find the perfect phone, laptop, or tablet based on their needs and preferences.
Present the recommendations naturally, mention key benefits, and ask a short follow-up question to help the customer decide.
Never invent products that are not in the provided list.`

// Generator creates the conversational reply for a turn.
type Generator struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewGenerator(llmProvider llm.LLMProvider, logger *log.Logger) *Generator {
	return &Generator{llmProvider: llmProvider, logger: logger}
}

// Narrate builds the reply text for a turn result. LLM failure is soft:
// the template fallback always produces a usable answer.
func (g *Generator) Narrate(ctx context.Context, utterance string, res *pipeline.TurnResult) string {
	if res.Empty {
		return emptyResultMessage(res.Relaxed)
	}

	if g.llmProvider != nil {
		prompt := g.buildPrompt(utterance, res)
		reply, err := g.llmProvider.Chat(ctx, []llm.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		}, llm.WithTemperature(0.7))
		if err == nil && strings.TrimSpace(reply) != "" {
			return decorate(reply, res)
		}
		if err != nil {
			g.logger.Printf("[RESPONSE] LLM generation failed, using template: %v", err)
		}
	}

	return decorate(FormatRecommendations(res), res)
}

func (g *Generator) buildPrompt(utterance string, res *pipeline.TurnResult) string {
	var sb strings.Builder
	sb.WriteString("The customer said: \"" + utterance + "\"\n\n")
	sb.WriteString("These products matched, best first:\n")
	for i, r := range res.Items {
		p := r.Product
		sb.WriteString(fmt.Sprintf("%d. %s ($%.0f, %s %s) - %s\n",
			i+1, p.Name, p.Price, p.Brand, p.Category, p.Description))
	}
	if len(res.Relaxed) > 0 {
		sb.WriteString("\nNote: the filters " + strings.Join(res.Relaxed, ", ") +
			" had to be dropped to find matches; mention this briefly.\n")
	}
	sb.WriteString("\nWrite a short, friendly reply presenting these options.")
	return sb.String()
}

// FormatRecommendations is the deterministic template fallback, used when
// no completion provider is configured or the call fails.
func FormatRecommendations(res *pipeline.TurnResult) string {
	if len(res.Items) == 0 {
		return emptyResultMessage(res.Relaxed)
	}

	var sb strings.Builder
	sb.WriteString("Here are some great options for you:\n\n")

	for i, r := range res.Items {
		p := r.Product
		sb.WriteString(fmt.Sprintf("%d. %s ($%.0f)\n", i+1, p.Name, p.Price))
		sb.WriteString(fmt.Sprintf("   Brand: %s\n", p.Brand))
		sb.WriteString(fmt.Sprintf("   %s\n", p.Description))
		if v, ok := p.Specs["screen_size"]; ok {
			sb.WriteString(fmt.Sprintf("   Screen: %s\n", v))
		}
		if v, ok := p.Specs["storage"]; ok {
			sb.WriteString(fmt.Sprintf("   Storage: %s\n", v))
		}
		sb.WriteString(fmt.Sprintf("   Match score: %.2f\n\n", r.Combined))
	}

	sb.WriteString("Would you like more details about any of these, or help narrowing down the search?")
	return sb.String()
}

func emptyResultMessage(relaxed []string) string {
	msg := "I couldn't find any products matching all your requirements."
	if len(relaxed) > 0 {
		msg += " I even tried ignoring " + strings.Join(relaxed, ", ") + " without luck."
	}
	return msg + " Could you tell me a bit more about what you're looking for? For example the device type, your budget, or a preferred brand."
}

// decorate prepends the soft notes a degraded or relaxed turn owes the user.
func decorate(reply string, res *pipeline.TurnResult) string {
	var notes []string
	if res.Degraded {
		notes = append(notes, "Heads up: semantic search is temporarily unavailable, so these results are based on your filters only.")
	}
	if len(res.Relaxed) > 0 {
		notes = append(notes, "I relaxed these filters to find matches: "+strings.Join(res.Relaxed, ", ")+".")
	}
	if len(notes) == 0 {
		return reply
	}
	return strings.Join(notes, " ") + "\n\n" + reply
}
