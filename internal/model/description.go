package model

import "time"

// GeneratedDescription is one result produced by the generation backend.
// Rows are immutable once created; the ID is the join key used by later
// view, correct and save-as actions.
type GeneratedDescription struct {
	ID                   string          `json:"id"`
	Type                 DescriptionType `json:"type"`
	InputText            string          `json:"input_text"`
	GeneratedDescription string          `json:"generated_description"`
	TokensUsed           *int            `json:"tokens_used,omitempty"`
	ModelVersion         string          `json:"model_version,omitempty"`
	ProcessingTime       float64         `json:"processing_time,omitempty"` // seconds
	CreatedAt            time.Time       `json:"created_at"`
}

// SavedDescription is a curated, taggable, visibility-controlled copy of text
// kept independently of the generation history. Manual examples are the same
// record with IsPublic forced to true.
type SavedDescription struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	Type      DescriptionType `json:"type"`
	Category  string          `json:"category"`
	Tags      []string        `json:"tags"`
	IsPublic  bool            `json:"is_public"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Correction is a user-supplied replacement for previously generated text.
// DescriptionID links back to the generation it corrects and is empty for
// free-text corrections with no known source.
type Correction struct {
	ID             string          `json:"id"`
	Original       string          `json:"original"`
	Corrected      string          `json:"corrected"`
	Type           DescriptionType `json:"type"`
	CorrectionType string          `json:"correction_type"`
	DescriptionID  string          `json:"description_id,omitempty"`
	Notes          string          `json:"notes"`
	IsApplied      bool            `json:"is_applied"`
	CreatedAt      time.Time       `json:"timestamp"`
}

// PromptTemplate is a stored instruction text steering the generation backend.
// At most one template per prompt type is active at a time; activating one
// deactivates its siblings server-side.
type PromptTemplate struct {
	ID         string          `json:"id"`
	PromptType DescriptionType `json:"prompt_type"`
	Title      string          `json:"title"`
	Content    string          `json:"content"`
	IsActive   bool            `json:"is_active"`
	Version    int             `json:"version"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Dashboard is the aggregate learning-data view: the most recent corrections,
// saved descriptions and generation history in one response.
type Dashboard struct {
	Corrections           []Correction           `json:"corrections"`
	SavedDescriptions     []SavedDescription     `json:"saved_descriptions"`
	GeneratedDescriptions []GeneratedDescription `json:"returned_descriptions"`
}

// Stats summarises activity totals plus a recent (7 day) window.
type Stats struct {
	TotalCorrections  int `json:"total_corrections"`
	TotalSaved        int `json:"total_saved_descriptions"`
	TotalGenerated    int `json:"total_generated_descriptions"`
	RecentCorrections int `json:"recent_corrections"`
	RecentGenerated   int `json:"recent_generated"`
}
