package exercise

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/avetrov/readmentor/internal/llm"
)

// Generator produces practice exercises.
type Generator interface {
	Generate(ctx context.Context, input GenerateInput) (*Exercise, error)
}

// Config holds generation parameters.
type Config struct {
	MaxTokens   int
	Temperature float64
	Validators  []Validator
}

// DefaultConfig returns sensible generation defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.7,
		Validators:  DefaultValidators(),
	}
}

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// NewGenerator creates an LLMGenerator with the given provider and config.
func NewGenerator(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// exerciseOutput mirrors ExerciseSchema for decoding the raw response.
type exerciseOutput struct {
	Level             string           `json:"level"`
	Topic             string           `json:"topic"`
	TimeTargetSeconds int              `json:"time_target_seconds"`
	WordsCount        int              `json:"words_count"`
	Passage           []string         `json:"passage"`
	Questions         []questionOutput `json:"questions"`
}

type questionOutput struct {
	ID            int      `json:"id"`
	Skill         string   `json:"skill"`
	Format        string   `json:"format"`
	QuestionText  string   `json:"question_text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Rationale     string   `json:"rationale"`
}

// Generate produces a validated exercise for the given input.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (*Exercise, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeExerciseGen)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input)},
		},
		Schema:      ExerciseSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("exercise generation: %w", err)
	}

	var raw exerciseOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("parse exercise response: %w", err)
	}

	ex := &Exercise{
		Level:             Level(raw.Level),
		Topic:             raw.Topic,
		TimeTargetSeconds: raw.TimeTargetSeconds,
		WordCount:         raw.WordsCount,
		Passage:           raw.Passage,
	}
	for _, q := range raw.Questions {
		ex.Questions = append(ex.Questions, Question{
			ID:        q.ID,
			Skill:     Skill(q.Skill),
			Format:    Format(q.Format),
			Text:      q.QuestionText,
			Options:   q.Options,
			Answer:    q.CorrectAnswer,
			Rationale: q.Rationale,
		})
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(ex); verr != nil {
			return nil, verr
		}
	}

	return ex, nil
}
