package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCloudWatch struct {
	datapoints []cwtypes.Datapoint
	err        error
	lastInput  *cloudwatch.GetMetricStatisticsInput
}

func (f *fakeCloudWatch) GetMetricStatistics(ctx context.Context, params *cloudwatch.GetMetricStatisticsInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error) {
	f.lastInput = params
	if f.err != nil {
		return nil, f.err
	}
	return &cloudwatch.GetMetricStatisticsOutput{Datapoints: f.datapoints}, nil
}

func datapoint(ts time.Time, avg, max float64) cwtypes.Datapoint {
	return cwtypes.Datapoint{
		Timestamp: aws.Time(ts),
		Average:   aws.Float64(avg),
		Maximum:   aws.Float64(max),
	}
}

func TestCPUUtilization_SortsAndRounds(t *testing.T) {
	base := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	client := &fakeCloudWatch{datapoints: []cwtypes.Datapoint{
		datapoint(base.Add(10*time.Minute), 43.2189, 88.9999),
		datapoint(base, 12.345, 20.004),
		datapoint(base.Add(5*time.Minute), 25.555, 60.123),
	}}

	series, err := NewExplorer(client).CPUUtilization(context.Background(), "i-123")
	require.NoError(t, err)

	assert.Equal(t, "i-123", series.InstanceID)
	assert.Equal(t, "CPUUtilization", series.Metric)
	require.Len(t, series.Datapoints, 3)

	for i := 1; i < len(series.Datapoints); i++ {
		assert.False(t, series.Datapoints[i].Timestamp.Before(series.Datapoints[i-1].Timestamp))
	}

	assert.Equal(t, 12.35, series.Datapoints[0].Average)
	assert.Equal(t, 20.0, series.Datapoints[0].Maximum)
	assert.Equal(t, 25.56, series.Datapoints[1].Average)
	assert.Equal(t, 43.22, series.Datapoints[2].Average)
	assert.Equal(t, 89.0, series.Datapoints[2].Maximum)
}

func TestCPUUtilization_QueryShape(t *testing.T) {
	client := &fakeCloudWatch{}

	_, err := NewExplorer(client).CPUUtilization(context.Background(), "i-456")
	require.NoError(t, err)
	require.NotNil(t, client.lastInput)

	in := client.lastInput
	assert.Equal(t, "AWS/EC2", aws.ToString(in.Namespace))
	assert.Equal(t, "CPUUtilization", aws.ToString(in.MetricName))
	assert.Equal(t, int32(300), aws.ToInt32(in.Period))
	require.Len(t, in.Dimensions, 1)
	assert.Equal(t, "i-456", aws.ToString(in.Dimensions[0].Value))

	window := in.EndTime.Sub(aws.ToTime(in.StartTime))
	assert.Equal(t, 3*time.Hour, window)
}

func TestCPUUtilization_EmptyIsNotAnError(t *testing.T) {
	series, err := NewExplorer(&fakeCloudWatch{}).CPUUtilization(context.Background(), "i-quiet")
	require.NoError(t, err)
	assert.Empty(t, series.Datapoints)
	assert.NotNil(t, series.Datapoints)
}

func TestCPUUtilization_UpstreamFailure(t *testing.T) {
	client := &fakeCloudWatch{err: errors.New("throttled")}

	_, err := NewExplorer(client).CPUUtilization(context.Background(), "i-789")
	assert.Error(t, err)
}

func TestOverview(t *testing.T) {
	client := &fakeCloudWatch{datapoints: []cwtypes.Datapoint{
		datapoint(time.Now(), 37.4567, 90),
	}}

	avg, err := NewExplorer(client).Overview(context.Background())
	require.NoError(t, err)
	require.NotNil(t, avg)
	assert.Equal(t, 37.46, *avg)
}

func TestOverview_NoData(t *testing.T) {
	avg, err := NewExplorer(&fakeCloudWatch{}).Overview(context.Background())
	require.NoError(t, err)
	assert.Nil(t, avg)
}
