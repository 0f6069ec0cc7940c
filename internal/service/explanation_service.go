package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/pharmasuccess/examportal/config"
	"github.com/pharmasuccess/examportal/internal/model"
	"github.com/pharmasuccess/examportal/internal/repository"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
	"gorm.io/gorm"
)

// ExplanationService generates and stores an explanation for a question's
// correct answer, for admins preparing study material.
type ExplanationService interface {
	GenerateExplanation(ctx context.Context, questionID uint) (string, error)
}

type explanationService struct {
	client       *genai.GenerativeModel
	questionRepo repository.QuestionRepository
}

func NewExplanationService(cfg *config.Config, questionRepo repository.QuestionRepository) (ExplanationService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. ExplanationService will be non-functional.")
		return &explanationService{questionRepo: questionRepo}, nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &explanationService{
		client:       client.GenerativeModel("gemini-1.5-flash"),
		questionRepo: questionRepo,
	}, nil
}

func (s *explanationService) GenerateExplanation(ctx context.Context, questionID uint) (string, error) {
	if s.client == nil {
		return "", ErrExplanationUnavailable
	}

	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrQuestionNotFound
		}
		return "", fmt.Errorf("fetching question %d: %w", questionID, err)
	}

	prompt := buildExplanationPrompt(question)
	resp, err := s.client.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Uint("questionID", questionID).Msg("Gemini explanation request failed")
		return "", fmt.Errorf("generating explanation: %w", err)
	}

	explanation := extractText(resp)
	if explanation == "" {
		return "", fmt.Errorf("empty explanation from model for question %d", questionID)
	}

	if err := s.questionRepo.UpdateExplanation(questionID, explanation); err != nil {
		return "", fmt.Errorf("storing explanation: %w", err)
	}
	return explanation, nil
}

func buildExplanationPrompt(q *model.Question) string {
	var b strings.Builder
	b.WriteString("You are a pharmacy exam tutor. Explain in 2-4 sentences why the correct answer to the following multiple-choice question is correct, and briefly why the distractors are wrong.\n\n")
	b.WriteString("Question: " + q.QuestionText + "\n")
	b.WriteString("A. " + q.OptionA + "\n")
	b.WriteString("B. " + q.OptionB + "\n")
	b.WriteString("C. " + q.OptionC + "\n")
	b.WriteString("D. " + q.OptionD + "\n")
	b.WriteString("Correct answer: " + q.CorrectOption + "\n")
	return b.String()
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return strings.TrimSpace(b.String())
}
