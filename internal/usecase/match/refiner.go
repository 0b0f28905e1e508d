package match

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"text/template"
	"time"
	"unicode/utf8"

	"github.com/gdugdh24/sparring-backend/internal/domain"
	"github.com/gdugdh24/sparring-backend/internal/infrastructure/gemini"
	"github.com/gdugdh24/sparring-backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

const (
	refineTemperature     = 0.3
	refineMaxOutputTokens = 400
	defaultRefineTimeout  = 10 * time.Second
	maxLogLength          = 200
)

// Fallback texts for the no-credential and the failure paths.
const (
	noKeyRisks      = "AI unavailable — no API key configured."
	noKeyStrengths  = "Rule-based score only."
	failedRisks     = "AI analysis unavailable."
	failedStrengths = "Based on rule scoring."
)

//go:embed prompt.tmpl
var promptSource string

var promptTemplate = template.Must(template.New("refine").Parse(promptSource))

// TextGenerator is the external text-generation service.
type TextGenerator interface {
	Generate(ctx context.Context, req gemini.GenerationRequest) (string, error)
}

// Refinement is the AI-adjusted verdict on a pair. It is always fully populated.
type Refinement struct {
	Score     int    `json:"compatibility_score"`
	Risks     string `json:"risks"`
	Strengths string `json:"strengths"`
	Reasoning string `json:"reasoning"`
}

// Refiner asks the text generator to refine a rule score. It never fails:
// a missing generator or any call/parse/validation error yields a fallback
// built from the rule score. One attempt per call, no retries.
type Refiner struct {
	generator TextGenerator
	model     string
	timeout   time.Duration
	logger    *zap.Logger
}

// NewRefiner builds a Refiner. A nil generator means no credential is
// configured and the external call is skipped.
func NewRefiner(generator TextGenerator, model string, timeout time.Duration, log *zap.Logger) *Refiner {
	if timeout <= 0 {
		timeout = defaultRefineTimeout
	}
	return &Refiner{
		generator: generator,
		model:     model,
		timeout:   timeout,
		logger:    logger.WithCommonFields(log, "gemini", model),
	}
}

// Enabled reports whether refinements go to the external service.
func (r *Refiner) Enabled() bool {
	return r != nil && r.generator != nil
}

// Refine returns the refined verdict for a and b. It makes at most one
// bounded call and falls back to ruleScore on any problem.
func (r *Refiner) Refine(ctx context.Context, a, b *domain.Profile, ruleScore float64) Refinement {
	if !r.Enabled() {
		return noCredentialFallback(ruleScore)
	}

	prompt, err := buildPrompt(a, b, ruleScore)
	if err != nil {
		r.logger.Warn("AI refinement failed", zap.Error(err))
		return failureFallback(ruleScore)
	}

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	r.logger.Debug("refinement request",
		zap.String("user_a", a.UserID),
		zap.String("user_b", b.UserID),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
	)

	raw, err := r.generator.Generate(callCtx, gemini.GenerationRequest{
		Model:           r.model,
		Prompt:          prompt,
		Temperature:     refineTemperature,
		MaxOutputTokens: refineMaxOutputTokens,
	})
	if err != nil {
		r.logger.Warn("AI refinement failed", zap.Error(err))
		return failureFallback(ruleScore)
	}

	refinement, err := parseRefinement(raw)
	if err != nil {
		r.logger.Warn("AI refinement failed",
			zap.Error(err),
			zap.String("response_preview", logger.TruncateForLog(raw, maxLogLength)),
		)
		return failureFallback(ruleScore)
	}

	return refinement
}

func noCredentialFallback(ruleScore float64) Refinement {
	return Refinement{
		Score:     roundScore(ruleScore),
		Risks:     noKeyRisks,
		Strengths: noKeyStrengths,
		Reasoning: fmt.Sprintf("Compatibility estimated at %.1f/100 using rule-based scoring.", ruleScore),
	}
}

func failureFallback(ruleScore float64) Refinement {
	return Refinement{
		Score:     roundScore(ruleScore),
		Risks:     failedRisks,
		Strengths: failedStrengths,
		Reasoning: fmt.Sprintf("Estimated compatibility: %.1f/100.", ruleScore),
	}
}

// roundScore rounds half to even.
func roundScore(v float64) int {
	return int(math.RoundToEven(v))
}

type athletePrompt struct {
	Name       string
	Sport      string
	SkillLevel int
	Experience string
	Weight     string
	Goals      string
	Intensity  string
}

func describe(p *domain.Profile) athletePrompt {
	d := athletePrompt{
		Name:       p.Name,
		Sport:      p.Sport,
		SkillLevel: p.SkillLevel,
		Experience: "unknown",
		Weight:     "unknown",
		Goals:      "not specified",
		Intensity:  "not specified",
	}
	if p.ExperienceYears != nil {
		d.Experience = strconv.Itoa(*p.ExperienceYears)
	}
	if p.Weight != nil {
		d.Weight = strconv.FormatFloat(*p.Weight, 'f', -1, 64)
	}
	if p.Goals != nil && strings.TrimSpace(*p.Goals) != "" {
		d.Goals = *p.Goals
	}
	if p.TrainingIntensity != nil && *p.TrainingIntensity != "" {
		d.Intensity = *p.TrainingIntensity
	}
	return d
}

func buildPrompt(a, b *domain.Profile, ruleScore float64) (string, error) {
	var buf bytes.Buffer
	err := promptTemplate.Execute(&buf, struct {
		A, B      athletePrompt
		RuleScore string
	}{
		A:         describe(a),
		B:         describe(b),
		RuleScore: strconv.FormatFloat(ruleScore, 'f', 1, 64),
	})
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return buf.String(), nil
}

// parseRefinement decodes and validates the generator's reply.
func parseRefinement(raw string) (Refinement, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &data); err != nil {
		return Refinement{}, fmt.Errorf("parse refinement: %w", err)
	}

	score, err := parseScore(data["compatibility_score"])
	if err != nil {
		return Refinement{}, err
	}

	var out Refinement
	out.Score = score
	for key, dst := range map[string]*string{
		"risks":     &out.Risks,
		"strengths": &out.Strengths,
		"reasoning": &out.Reasoning,
	} {
		v, ok := data[key].(string)
		if !ok {
			return Refinement{}, fmt.Errorf("refinement field %q missing or not a string", key)
		}
		*dst = strings.TrimSpace(v)
	}
	return out, nil
}

var errInvalidScore = errors.New("compatibility_score must be an integer between 0 and 100")

func parseScore(v any) (int, error) {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, errInvalidScore
		}
		f = parsed
	default:
		return 0, errInvalidScore
	}
	if math.IsNaN(f) || f != math.Trunc(f) || f < 0 || f > 100 {
		return 0, errInvalidScore
	}
	return int(f), nil
}

// extractJSON strips markdown code fences some models wrap around JSON.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(raw)
}
