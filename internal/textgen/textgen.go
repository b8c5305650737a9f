// Package textgen is the text-generation collaborator. Calls never fail from
// the caller's point of view: any error or empty answer is replaced by a
// fixed Portuguese sentence.
package textgen

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/JocaCola1972/Treinos-LevelUP/internal/domain"
	"github.com/JocaCola1972/Treinos-LevelUP/internal/metrics"
)

// Fallback texts shown when the model cannot answer.
const (
	TipsErrorFallback     = "Foco total na rede e bons treinos!"
	TipsEmptyFallback     = "Prepara-te para dar o teu melhor em campo!"
	AnalysisErrorFallback = "A análise da aula será processada em breve."
	AnalysisEmptyFallback = "Análise concluída com sucesso."
)

// DefaultFocus is the topic used for the dashboard tips.
const DefaultFocus = "Padel"

// Generator produces the free-text content of the app.
type Generator interface {
	// TrainingTips returns short motivational tips for a session focused on
	// focus, optionally tuned to a skill level.
	TrainingTips(ctx context.Context, level domain.SkillLevel, focus string) string
	// AnalyzeSession summarizes coach notes into the insight stored on a
	// completed session.
	AnalyzeSession(ctx context.Context, notes string) string
}

// Completer sends one prompt to a model and returns its text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// service implements Generator on top of a Completer.
type service struct {
	completer Completer
}

// NewGenerator wraps completer with the fallback policy.
func NewGenerator(completer Completer) Generator {
	return &service{completer: completer}
}

func (s *service) TrainingTips(ctx context.Context, level domain.SkillLevel, focus string) string {
	return s.generate(ctx, metrics.CallTips, tipsPrompt(level, focus), TipsEmptyFallback, TipsErrorFallback)
}

func (s *service) AnalyzeSession(ctx context.Context, notes string) string {
	return s.generate(ctx, metrics.CallAnalysis, analysisPrompt(notes), AnalysisEmptyFallback, AnalysisErrorFallback)
}

func (s *service) generate(ctx context.Context, call, prompt, emptyFallback, errorFallback string) string {
	text, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		log.Printf("WARN: text generation (%s) failed, using fallback: %v", call, err)
		metrics.TextgenFallbacks.WithLabelValues(call, metrics.ReasonError).Inc()
		return errorFallback
	}
	text = strings.TrimSpace(text)
	if text == "" {
		metrics.TextgenFallbacks.WithLabelValues(call, metrics.ReasonEmpty).Inc()
		return emptyFallback
	}
	return text
}

func tipsPrompt(level domain.SkillLevel, focus string) string {
	focus = strings.TrimSpace(focus)
	if focus == "" {
		focus = DefaultFocus
	}
	prompt := fmt.Sprintf("Gera 3 dicas curtas e motivacionais para um treino de padel focado em %s.", focus)
	if level != "" {
		prompt += fmt.Sprintf(" Os atletas têm nível %s.", level)
	}
	return prompt + " Responde em Português de Portugal."
}

func analysisPrompt(notes string) string {
	return fmt.Sprintf("Com base nas notas do treinador: %q, resume os pontos principais e sugere um foco para a próxima aula. "+
		"Responde em formato bullet points curtos em Português.", notes)
}
