package render

import (
	"strconv"
	"strings"
	"time"

	"descgen/internal/model"
)

// Per-entity field budgets. Short identity fields get 100, body text gets
// 150–200 depending on how much one row can carry.
const (
	titleBudget   = 100
	contentBudget = 150
	outputBudget  = 200
)

// Corrections is the list view over recorded corrections.
var Corrections = List[model.Correction]{
	Title:     "Corrections",
	Timestamp: func(c model.Correction) time.Time { return c.CreatedAt },
	Fields: []Field[model.Correction]{
		{Name: "id", Budget: titleBudget, Value: func(c model.Correction) string { return c.ID }},
		{Name: "type", Budget: titleBudget, Value: func(c model.Correction) string { return string(c.Type) }},
		{Name: "original", Budget: contentBudget, Value: func(c model.Correction) string { return c.Original }},
		{Name: "corrected", Budget: contentBudget, Value: func(c model.Correction) string { return c.Corrected }},
	},
}

// SavedDescriptions is the list view over the saved library. Examples share
// it: they are saved descriptions with is_public set.
var SavedDescriptions = List[model.SavedDescription]{
	Title:     "Saved descriptions",
	Timestamp: func(s model.SavedDescription) time.Time { return s.CreatedAt },
	Fields: []Field[model.SavedDescription]{
		{Name: "id", Budget: titleBudget, Value: func(s model.SavedDescription) string { return s.ID }},
		{Name: "title", Budget: titleBudget, Value: func(s model.SavedDescription) string { return s.Title }},
		{Name: "category", Budget: titleBudget, Value: func(s model.SavedDescription) string { return s.Category }},
		{Name: "tags", Budget: titleBudget, Value: func(s model.SavedDescription) string { return strings.Join(s.Tags, ",") }},
		{Name: "public", Budget: titleBudget, Value: func(s model.SavedDescription) string {
			if s.IsPublic {
				return "yes"
			}
			return "no"
		}},
		{Name: "content", Budget: contentBudget, Value: func(s model.SavedDescription) string { return s.Content }},
	},
}

// Examples reuses the saved-description shape under its own heading.
var Examples = func() List[model.SavedDescription] {
	l := SavedDescriptions
	l.Title = "Examples"
	return l
}()

// GeneratedHistory is the list view over past generations.
var GeneratedHistory = List[model.GeneratedDescription]{
	Title:     "Generated descriptions",
	Timestamp: func(d model.GeneratedDescription) time.Time { return d.CreatedAt },
	Fields: []Field[model.GeneratedDescription]{
		{Name: "id", Budget: titleBudget, Value: func(d model.GeneratedDescription) string { return d.ID }},
		{Name: "type", Budget: titleBudget, Value: func(d model.GeneratedDescription) string { return string(d.Type) }},
		{Name: "input", Budget: contentBudget, Value: func(d model.GeneratedDescription) string { return d.InputText }},
		{Name: "output", Budget: outputBudget, Value: func(d model.GeneratedDescription) string { return d.GeneratedDescription }},
	},
}

// Prompts is the list view over prompt templates.
var Prompts = List[model.PromptTemplate]{
	Title:     "Prompt templates",
	Timestamp: func(p model.PromptTemplate) time.Time { return p.CreatedAt },
	Fields: []Field[model.PromptTemplate]{
		{Name: "id", Budget: titleBudget, Value: func(p model.PromptTemplate) string { return p.ID }},
		{Name: "type", Budget: titleBudget, Value: func(p model.PromptTemplate) string { return string(p.PromptType) }},
		{Name: "title", Budget: titleBudget, Value: func(p model.PromptTemplate) string { return p.Title }},
		{Name: "active", Budget: titleBudget, Value: func(p model.PromptTemplate) string {
			if p.IsActive {
				return "yes"
			}
			return "no"
		}},
		{Name: "v", Budget: titleBudget, Value: func(p model.PromptTemplate) string { return strconv.Itoa(p.Version) }},
		{Name: "content", Budget: contentBudget, Value: func(p model.PromptTemplate) string { return p.Content }},
	},
}
