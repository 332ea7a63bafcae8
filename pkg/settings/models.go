// File: pkg/settings/models.go
package settings

// Model describes one selectable model of a provider.
type Model struct {
	ID          string
	Name        string
	Description string
}

// Providers lists the known providers in display order.
var Providers = []string{"gemini", "openai", "anthropic", "ollama"}

// Catalog maps a provider to its models; the first entry is the provider default.
var Catalog = map[string][]Model{
	"openai": {
		{ID: "gpt-4.5", Name: "GPT-4.5", Description: "Most capable model with vision and high token limit"},
		{ID: "gpt-4-turbo", Name: "GPT-4 Turbo", Description: "Powerful model with good balance of capabilities"},
		{ID: "gpt-3.5-turbo", Name: "GPT-3.5 Turbo", Description: "Fast and cost-effective model"},
	},
	"anthropic": {
		{ID: "claude-3.7-sonnet", Name: "Claude 3.7 Sonnet", Description: "Most powerful Claude model with highest reasoning capabilities"},
		{ID: "claude-3.5-sonnet", Name: "Claude 3.5 Sonnet", Description: "Balanced model with good performance and speed"},
		{ID: "claude-3.5-haiku", Name: "Claude 3.5 Haiku", Description: "Fast and efficient model for simpler tasks"},
	},
	"gemini": {
		{ID: "gemini-2.5-pro-preview-03-25", Name: "Gemini 2.5 Pro", Description: "Most capable Gemini model with 1M token context"},
		{ID: "gemini-2.5-flash", Name: "Gemini 2.5 Flash", Description: "Fast and efficient model with 1M token context"},
		{ID: "gemini-nano", Name: "Gemini Nano", Description: "Previous generation model"},
	},
	"ollama": {
		{ID: "llama3", Name: "Llama 3", Description: "Latest Llama model from Meta"},
		{ID: "llama3:8b", Name: "Llama 3 (8B)", Description: "Smaller and faster Llama 3 model"},
		{ID: "mistral", Name: "Mistral", Description: "Efficient open-source model"},
		{ID: "mixtral", Name: "Mixtral", Description: "Mixture of experts model with strong capabilities"},
	},
}

// ModelsFor returns the models of provider, or nil for an unknown provider.
func ModelsFor(provider string) []Model {
	return Catalog[provider]
}

// DefaultModel returns the first model ID of provider.
func DefaultModel(provider string) (string, bool) {
	models := ModelsFor(provider)
	if len(models) == 0 {
		return "", false
	}
	return models[0].ID, true
}

// FindModel looks up a model by ID.
func FindModel(provider, id string) (Model, bool) {
	for _, m := range ModelsFor(provider) {
		if m.ID == id {
			return m, true
		}
	}
	return Model{}, false
}

// IsKnownProvider reports whether provider has a catalog entry.
func IsKnownProvider(provider string) bool {
	_, ok := Catalog[provider]
	return ok
}

// RequiresAPIKey reports whether provider needs a key; local ollama does not.
func RequiresAPIKey(provider string) bool {
	return provider != "ollama"
}
