package models

// Prompt is a guiding sentence bound to a day number.
type Prompt struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// PromptSet is the layout of the static prompts.json document.
type PromptSet struct {
	Prompts []Prompt `json:"prompts"`
}
