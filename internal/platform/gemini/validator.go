package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"text/template"
	"time"

	"google.golang.org/genai"

	"github.com/phrazzld/verbdojo/internal/config"
	"github.com/phrazzld/verbdojo/internal/validation"
)

// promptTemplate is the grading instruction sent with every request. The
// verdict shape is enforced separately through the response schema.
const promptTemplate = `You are grading one answer in a verb conjugation drill.

Verb: {{.Verb}} ({{.Translation}})
Tense: {{.Tense}}
Person: {{.Person}}
Reference conjugation: {{.CorrectAnswer}}
Learner's answer: {{.UserAnswer}}

Accept the answer when it is the reference conjugation, differing at most in
capitalization, surrounding whitespace, or an equally valid spelling or
gender variant of the same conjugated form. Reject every other form of the
verb and everything else.

Respond with JSON: "accepted" (boolean) and, when rejecting, a one-sentence
"explanation" telling the learner what the correct form is.`

// verdictResponseSchema constrains the model output to the verdict JSON.
var verdictResponseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"accepted":    {Type: genai.TypeBoolean},
		"explanation": {Type: genai.TypeString},
	},
	Required: []string{"accepted"},
}

// Validator implements the validation.Validator interface using Google's
// Gemini API to grade free-text conjugation answers.
type Validator struct {
	// logger is used for structured logging
	logger *slog.Logger

	// config contains LLM-specific configuration
	config config.LLMConfig

	// tmpl is the parsed template for creating prompts
	tmpl *template.Template

	// client is the Gemini API client for making requests
	client *genai.Client

	// model is the name of the Gemini model to use
	model string
}

var _ validation.Validator = (*Validator)(nil)

// NewValidator creates a new Validator with the provided dependencies.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing API key, model name, and retry settings
//
// Returns:
//   - A properly initialized Validator or an error if initialization fails
func NewValidator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Validator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", ErrInvalidConfig)
	}

	tmpl, err := template.New("verdict").Parse(promptTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", ErrInvalidConfig, err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", ErrInvalidConfig, err)
	}

	return &Validator{
		logger: logger.With(slog.String("component", "gemini_validator")),
		config: cfg,
		tmpl:   tmpl,
		client: client,
		model:  cfg.ModelName,
	}, nil
}

// Validate grades the learner's answer against the reference conjugation.
// Any returned error means the verdict is unavailable, not that the answer
// is wrong; callers fall back to exact-match grading.
func (v *Validator) Validate(
	ctx context.Context,
	userAnswer string,
	correctAnswer string,
	qctx validation.Context,
) (validation.Result, error) {
	prompt, err := v.buildPrompt(ctx, userAnswer, correctAnswer, qctx)
	if err != nil {
		return validation.Result{}, err
	}

	verdict, err := v.callWithRetry(ctx, prompt)
	if err != nil {
		return validation.Result{}, err
	}

	result := validation.Result{
		Accepted:    verdict.Accepted,
		Explanation: verdict.Explanation,
	}
	if !result.Accepted && result.Explanation == "" {
		result.Explanation = "Correct answer: " + correctAnswer
	}
	if result.Accepted {
		result.Explanation = ""
	}

	v.logger.DebugContext(ctx, "answer graded",
		slog.Bool("accepted", result.Accepted),
		slog.String("verb", qctx.Verb.Word),
		slog.String("tense", string(qctx.Tense)))

	return result, nil
}

// buildPrompt renders the grading prompt for one answer.
func (v *Validator) buildPrompt(
	ctx context.Context,
	userAnswer string,
	correctAnswer string,
	qctx validation.Context,
) (string, error) {
	if strings.TrimSpace(userAnswer) == "" {
		return "", ErrEmptyAnswer
	}
	if correctAnswer == "" {
		return "", fmt.Errorf("%w: reference conjugation missing", ErrInvalidConfig)
	}

	data := promptData{
		Verb:          qctx.Verb.Word,
		Translation:   qctx.Verb.Translation,
		Tense:         string(qctx.Tense),
		Person:        qctx.Person.NativeLabel(),
		CorrectAnswer: correctAnswer,
		UserAnswer:    userAnswer,
	}

	var promptBuffer strings.Builder
	if err := v.tmpl.Execute(&promptBuffer, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	prompt := promptBuffer.String()
	v.logger.DebugContext(ctx, "prompt generated",
		slog.Int("prompt_length", len(prompt)))

	return prompt, nil
}

// callWithRetry makes a call to the Gemini API with exponential backoff
// retry logic.
//
// It attempts the call up to config.MaxRetries+1 times, backing off with
// jitter between attempts for transient errors. Permanent errors (like
// content being blocked by safety filters, or an unparseable verdict) are
// returned immediately without retrying.
func (v *Validator) callWithRetry(ctx context.Context, prompt string) (*verdictSchema, error) {
	maxRetries := v.config.MaxRetries
	baseDelaySeconds := v.config.RetryDelaySeconds
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	if maxRetries < 0 {
		v.logger.WarnContext(ctx, "invalid max retries value, using default", slog.Int("max_retries", 3))
		maxRetries = 3
	}
	if baseDelaySeconds < 1 {
		v.logger.WarnContext(ctx, "invalid retry delay value, using default", slog.Int("base_delay_seconds", 2))
		baseDelaySeconds = 2
	}

	for attempt := 0; ; attempt++ {
		attemptNum := attempt + 1
		v.logger.DebugContext(ctx, "making Gemini API call",
			slog.Int("attempt", attemptNum),
			slog.Int("max_attempts", maxRetries+1))

		verdict, transient, err := v.generateVerdict(ctx, prompt)
		if err == nil {
			v.logger.DebugContext(ctx, "Gemini API call successful", slog.Int("attempt", attemptNum))
			return verdict, nil
		}

		v.logger.ErrorContext(ctx, "Gemini API call failed",
			slog.Int("attempt", attemptNum),
			slog.String("error", err.Error()))

		if !transient {
			return nil, err
		}

		if attempt >= maxRetries {
			return nil, fmt.Errorf("%w: exceeded maximum retry attempts (%d)", ErrTransientFailure, maxRetries)
		}

		// delay = baseDelay * (2^attempt) * (0.5 + rand(0, 0.5))
		backoffSeconds := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		jitterFactor := 0.5 + rng.Float64()*0.5
		delay := time.Duration(backoffSeconds * jitterFactor * float64(time.Second))

		v.logger.DebugContext(ctx, "retrying after delay",
			slog.Int("attempt", attemptNum),
			slog.Duration("delay", delay))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrTransientFailure, ctx.Err())
		}
	}
}

// generateVerdict performs one API call and interprets the response. The
// transient flag tells the retry loop whether another attempt makes sense.
func (v *Validator) generateVerdict(ctx context.Context, prompt string) (*verdictSchema, bool, error) {
	resp, err := v.client.Models.GenerateContent(ctx, v.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   verdictResponseSchema,
	})
	if err != nil {
		return nil, true, fmt.Errorf("gemini API call error: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return nil, false, fmt.Errorf("%w: no content generated", ErrInvalidResponse)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return nil, false, ErrContentBlocked
	}
	if resp.Candidates[0].Content == nil {
		return nil, false, fmt.Errorf("%w: empty content in response", ErrInvalidResponse)
	}

	verdict, err := parseVerdict(resp.Text())
	if err != nil {
		return nil, false, err
	}
	return verdict, false, nil
}

// parseVerdict decodes the model's JSON verdict.
func parseVerdict(text string) (*verdictSchema, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty verdict text", ErrInvalidResponse)
	}

	var verdict verdictSchema
	if err := json.Unmarshal([]byte(trimmed), &verdict); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON verdict: %v", ErrInvalidResponse, err)
	}
	return &verdict, nil
}
