package factory

import (
	"fmt"

	"pdf-qa-be/pkg/llm"
	"pdf-qa-be/pkg/llm/gemini"
	"pdf-qa-be/pkg/llm/ollama"
	"pdf-qa-be/pkg/llm/openai"
)

// Settings carries everything any provider may need; each provider reads its own fields.
type Settings struct {
	Provider      string
	Model         string
	OllamaBaseURL string
	GeminiAPIKey  string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	HFAPIKey      string
}

func NewLLMProvider(s Settings) (llm.LLMProvider, error) {
	switch s.Provider {
	case "ollama":
		baseURL := s.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, s.Model), nil
	case "gemini":
		if s.GeminiAPIKey == "" {
			return nil, fmt.Errorf("gemini provider requires GOOGLE_GEMINI_API_KEY")
		}
		return gemini.NewGeminiProvider(s.GeminiAPIKey, s.Model), nil
	case "openai":
		if s.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("openai provider requires OPENAI_API_KEY")
		}
		return openai.NewOpenAIProvider(s.OpenAIAPIKey, s.OpenAIBaseURL, s.Model), nil
	case "huggingface":
		// The HF router speaks the OpenAI chat completions protocol.
		if s.HFAPIKey == "" {
			return nil, fmt.Errorf("huggingface provider requires HUGGINGFACE_API_KEY")
		}
		return openai.NewOpenAIProvider(s.HFAPIKey, openai.HuggingFaceRouterURL, s.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", s.Provider)
	}
}
