package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/markdave123-py/delulu-meter/internal/core"
)

const systemPrompt = `You score the sentiment polarity of chat messages.
Return only a JSON array of numbers, one per message, in the same order.
Each number is between -1 (very negative) and 1 (very positive); 0 is neutral.`

// GeminiScorer asks a Gemini model for message polarities in batches.
// A failed batch scores neutral rather than failing the analysis.
type GeminiScorer struct {
	client    *genai.Client
	modelName string
	batchSize int
	generate  func(ctx context.Context, prompt string) (string, error)
}

func NewGeminiScorer(ctx context.Context, apiKey, modelName string, batchSize int) (*GeminiScorer, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	if batchSize <= 0 {
		batchSize = 50
	}
	g := &GeminiScorer{client: cl, modelName: modelName, batchSize: batchSize}
	g.generate = g.generateContent
	return g, nil
}

func (g *GeminiScorer) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// Polarities scores texts batch by batch.
func (g *GeminiScorer) Polarities(ctx context.Context, texts []string) []float64 {
	out := make([]float64, len(texts))
	for start := 0; start < len(texts); start += g.batchSize {
		end := min(start+g.batchSize, len(texts))
		scores, err := g.scoreBatch(ctx, texts[start:end])
		if err != nil {
			log.Printf("GeminiScorer: batch %d-%d scored neutral: %v", start, end, err)
			continue
		}
		copy(out[start:end], scores)
	}
	return out
}

func (g *GeminiScorer) scoreBatch(ctx context.Context, texts []string) ([]float64, error) {
	var b strings.Builder
	for i, t := range texts {
		fmt.Fprintf(&b, "%d. %s\n", i+1, strings.ReplaceAll(t, "\n", " "))
	}
	raw, err := g.generate(ctx, b.String())
	if err != nil {
		return nil, err
	}
	return parsePolarities(raw, len(texts))
}

func (g *GeminiScorer) generateContent(ctx context.Context, prompt string) (string, error) {
	m := g.client.GenerativeModel(g.modelName)
	m.SetTemperature(0)
	m.ResponseMIMEType = "application/json"
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini generate: empty response")
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String(), nil
}

// parsePolarities reads a JSON array of n numbers, tolerating a markdown
// code fence around it, and clamps every value into [-1, 1].
func parsePolarities(raw string, n int) ([]float64, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var scores []float64
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &scores); err != nil {
		return nil, fmt.Errorf("decode polarities: %w", err)
	}
	if len(scores) != n {
		return nil, fmt.Errorf("polarity count mismatch: got %d want %d", len(scores), n)
	}
	for i, s := range scores {
		scores[i] = max(-1, min(1, s))
	}
	return scores, nil
}

var _ core.SentimentScorer = (*GeminiScorer)(nil)
