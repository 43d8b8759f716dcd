// Package generator abstracts the text-generation backend. The service layer
// builds prompts; how the text actually gets produced stays behind the
// Generator interface.
package generator

import "context"

// Result is one completed generation.
type Result struct {
	Text         string
	TokensUsed   int
	ModelVersion string
}

// Generator produces descriptive text from a system prompt and a user prompt.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, prompt string) (*Result, error)
}

// SystemPrompt frames every generation regardless of description type.
const SystemPrompt = "You are a knowledgeable guitar expert with deep understanding of guitars, guitar companies, and the music industry."

// DefaultGuitarPrompt steers guitar-description generation when no prompt
// template is active for the type.
const DefaultGuitarPrompt = `You are an expert guitar enthusiast. Create a detailed, engaging description of a guitar based on the following information.
%s
Input information: %s

Please provide a comprehensive description that includes:
- Technical specifications
- Sound characteristics
- Build quality and materials
- Target audience
- Historical context if relevant

Make the description informative yet accessible to both beginners and experienced players.`

// DefaultCompanyPrompt steers company-description generation when no prompt
// template is active for the type.
const DefaultCompanyPrompt = `You are an expert in guitar manufacturing and company history. Create a detailed description of a guitar company based on the following information.
%s
Input information: %s

Please provide a comprehensive description that includes:
- Company history and founding
- Notable achievements and innovations
- Signature products and models
- Company philosophy and values
- Market position and reputation
- Key people and milestones

Make the description engaging and informative for guitar enthusiasts.`
