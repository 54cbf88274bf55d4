package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

const metricsNamespace = "Compass"

// Metrics publishes application metrics to CloudWatch. When disabled it is a
// no-op, so callers never need to branch.
type Metrics struct {
	client  *cloudwatch.Client
	logger  *zap.Logger
	enabled bool
}

// NewMetrics creates a metrics publisher
func NewMetrics(client *cloudwatch.Client, logger *zap.Logger, enabled bool) *Metrics {
	return &Metrics{
		client:  client,
		logger:  logger,
		enabled: enabled,
	}
}

// RecordGeneration records a generation attempt with its latency and outcome
func (m *Metrics) RecordGeneration(ctx context.Context, duration time.Duration, success bool) {
	outcome := "Failure"
	if success {
		outcome = "Success"
	}

	m.put(ctx,
		types.MetricDatum{
			MetricName: aws.String("GenerationLatency"),
			Unit:       types.StandardUnitMilliseconds,
			Value:      aws.Float64(float64(duration.Milliseconds())),
		},
		types.MetricDatum{
			MetricName: aws.String("GenerationCount"),
			Unit:       types.StandardUnitCount,
			Value:      aws.Float64(1),
			Dimensions: []types.Dimension{
				{Name: aws.String("Outcome"), Value: aws.String(outcome)},
			},
		},
	)
}

// RecordStoreOperation records a store mutation or query
func (m *Metrics) RecordStoreOperation(ctx context.Context, operation string, success bool) {
	outcome := "Failure"
	if success {
		outcome = "Success"
	}

	m.put(ctx, types.MetricDatum{
		MetricName: aws.String("StoreOperationCount"),
		Unit:       types.StandardUnitCount,
		Value:      aws.Float64(1),
		Dimensions: []types.Dimension{
			{Name: aws.String("Operation"), Value: aws.String(operation)},
			{Name: aws.String("Outcome"), Value: aws.String(outcome)},
		},
	})
}

func (m *Metrics) put(ctx context.Context, data ...types.MetricDatum) {
	if !m.enabled || m.client == nil {
		return
	}

	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(metricsNamespace),
		MetricData: data,
	})
	if err != nil {
		// Metrics must never fail the operation they observe
		m.logger.Warn("Failed to publish metrics", zap.Error(err))
	}
}
