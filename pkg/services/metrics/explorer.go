package metrics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"github.com/cloudops-tools/cloudops/pkg/models/domain"
	"github.com/cloudops-tools/cloudops/pkg/services/awsclients"
)

const (
	cpuWindow  = 3 * time.Hour
	cpuPeriod  = 300 // 5-minute datapoints
	metricName = "CPUUtilization"
)

// Explorer reads CloudWatch statistics for one account.
type Explorer interface {
	// CPUUtilization returns the trailing 3-hour CPU series for one
	// instance, ascending by timestamp. An empty series is a valid result.
	CPUUtilization(ctx context.Context, instanceID string) (domain.MetricSeries, error)

	// Overview returns the account-wide mean CPU over the trailing hour, or
	// nil when no datapoints exist.
	Overview(ctx context.Context) (*float64, error)
}

type explorer struct {
	client awsclients.CloudWatchAPI
}

func NewExplorer(client awsclients.CloudWatchAPI) Explorer {
	return &explorer{client: client}
}

func (e *explorer) CPUUtilization(ctx context.Context, instanceID string) (domain.MetricSeries, error) {
	end := time.Now()
	start := end.Add(-cpuWindow)

	resp, err := e.client.GetMetricStatistics(ctx, &cloudwatch.GetMetricStatisticsInput{
		Namespace:  aws.String("AWS/EC2"),
		MetricName: aws.String(metricName),
		Dimensions: []types.Dimension{
			{Name: aws.String("InstanceId"), Value: aws.String(instanceID)},
		},
		StartTime:  aws.Time(start),
		EndTime:    aws.Time(end),
		Period:     aws.Int32(cpuPeriod),
		Statistics: []types.Statistic{types.StatisticAverage, types.StatisticMaximum},
		Unit:       types.StandardUnitPercent,
	})
	if err != nil {
		return domain.MetricSeries{}, fmt.Errorf("get CPU statistics for %s: %w", instanceID, err)
	}

	datapoints := make([]domain.Datapoint, 0, len(resp.Datapoints))
	for _, dp := range resp.Datapoints {
		datapoints = append(datapoints, domain.Datapoint{
			Timestamp: aws.ToTime(dp.Timestamp),
			Average:   round2(aws.ToFloat64(dp.Average)),
			Maximum:   round2(aws.ToFloat64(dp.Maximum)),
		})
	}

	// The API does not guarantee datapoint order.
	sort.Slice(datapoints, func(i, j int) bool {
		return datapoints[i].Timestamp.Before(datapoints[j].Timestamp)
	})

	return domain.MetricSeries{
		InstanceID: instanceID,
		Metric:     metricName,
		Datapoints: datapoints,
	}, nil
}

func (e *explorer) Overview(ctx context.Context) (*float64, error) {
	end := time.Now()
	start := end.Add(-time.Hour)

	resp, err := e.client.GetMetricStatistics(ctx, &cloudwatch.GetMetricStatisticsInput{
		Namespace:  aws.String("AWS/EC2"),
		MetricName: aws.String(metricName),
		StartTime:  aws.Time(start),
		EndTime:    aws.Time(end),
		Period:     aws.Int32(3600),
		Statistics: []types.Statistic{types.StatisticAverage},
		Unit:       types.StandardUnitPercent,
	})
	if err != nil {
		return nil, fmt.Errorf("get account CPU overview: %w", err)
	}

	if len(resp.Datapoints) == 0 || resp.Datapoints[0].Average == nil {
		return nil, nil
	}
	avg := round2(*resp.Datapoints[0].Average)
	return &avg, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
