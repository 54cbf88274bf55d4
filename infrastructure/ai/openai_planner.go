package ai

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"go.uber.org/zap"

	"compass/application/ports"
	"compass/application/services"
	"compass/domain/core/entities"
	"compass/domain/core/validators"
	"compass/pkg/errors"
	"compass/pkg/observability"
)

const (
	defaultTimeout = 60 * time.Second
	// One retry on transport failures. Schema violations in the model output
	// are never retried: a second identical prompt is as likely to fail.
	maxRetries      = 1
	initialInterval = 500 * time.Millisecond
)

// OpenAIPlanner generates structured itineraries through the OpenAI chat
// completions API with a JSON-schema constrained response format
type OpenAIPlanner struct {
	client  openai.Client
	model   string
	timeout time.Duration
	metrics *observability.Metrics
	tracer  *observability.Tracer
	logger  *zap.Logger

	clientOpts []option.RequestOption
}

// PlannerOption customizes an OpenAIPlanner
type PlannerOption func(*OpenAIPlanner)

// WithTimeout overrides the per-generation timeout
func WithTimeout(timeout time.Duration) PlannerOption {
	return func(p *OpenAIPlanner) {
		if timeout > 0 {
			p.timeout = timeout
		}
	}
}

// WithBaseURL points the planner at an alternate API endpoint
func WithBaseURL(baseURL string) PlannerOption {
	return func(p *OpenAIPlanner) {
		p.clientOpts = append(p.clientOpts, option.WithBaseURL(baseURL))
	}
}

// WithMetrics attaches generation metrics recording
func WithMetrics(metrics *observability.Metrics) PlannerOption {
	return func(p *OpenAIPlanner) {
		p.metrics = metrics
	}
}

// WithTracer wraps each generation in a trace subsegment
func WithTracer(tracer *observability.Tracer) PlannerOption {
	return func(p *OpenAIPlanner) {
		p.tracer = tracer
	}
}

// NewOpenAIPlanner creates a planner backed by the OpenAI API
func NewOpenAIPlanner(apiKey, model string, logger *zap.Logger, opts ...PlannerOption) *OpenAIPlanner {
	p := &OpenAIPlanner{
		model:   model,
		timeout: defaultTimeout,
		logger:  logger,
		// The SDK's built-in retries are disabled so the retry policy
		// below is the only one in play
		clientOpts: []option.RequestOption{
			option.WithAPIKey(apiKey),
			option.WithMaxRetries(0),
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.client = openai.NewClient(p.clientOpts...)
	return p
}

// GeneratePlan produces a validated structured plan for the request.
// Transport failures get one retry with exponential backoff; malformed model
// output fails immediately as a generation error. The planner never touches
// the store.
func (p *OpenAIPlanner) GeneratePlan(ctx context.Context, req ports.PlanRequest) (*entities.Plan, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	prompt := services.BuildPlanPrompt(req)
	started := time.Now()

	var plan *entities.Plan
	run := func(ctx context.Context) error {
		operation := func() error {
			result, err := p.generateOnce(ctx, prompt)
			if err != nil {
				if errors.IsValidation(err) || errors.IsGeneration(err) {
					return backoff.Permanent(err)
				}
				p.logger.Warn("Generation attempt failed, will retry",
					zap.String("destination", req.Destination),
					zap.Error(err),
				)
				return err
			}
			plan = result
			return nil
		}

		bo := backoff.NewExponentialBackOff()
		bo.InitialInterval = initialInterval
		return backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(bo, maxRetries), ctx))
	}

	var err error
	if p.tracer != nil {
		err = p.tracer.TraceFunction(ctx, "GeneratePlan", run)
	} else {
		err = run(ctx)
	}

	if p.metrics != nil {
		p.metrics.RecordGeneration(ctx, time.Since(started), err == nil)
	}
	if err != nil {
		if errors.IsValidation(err) {
			return nil, errors.NewGenerationError("model output violated the plan schema", err)
		}
		if errors.IsGeneration(err) {
			return nil, err
		}
		return nil, errors.NewGenerationError("generation request failed", err)
	}

	p.logger.Info("Plan generated",
		zap.String("destination", req.Destination),
		zap.Int("days", len(plan.Days)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return plan, nil
}

func (p *OpenAIPlanner) generateOnce(ctx context.Context, prompt string) (*entities.Plan, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   "travel_plan",
					Schema: planSchema(),
					Strict: openai.Bool(true),
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, errors.NewGenerationError("model returned no choices", nil)
	}

	return validators.ValidatePlan(json.RawMessage(resp.Choices[0].Message.Content))
}
