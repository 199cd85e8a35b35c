package metrics

import "time"

type noopClient struct{}

// NewNoopClient returns a Client that discards every sample. It is the
// coordinator's default metrics.Client when none is configured via
// queue.WithMetricsClient.
func NewNoopClient() Client {
	return &noopClient{}
}

var _ Client = (*noopClient)(nil)

func (*noopClient) Counter(name string, tags Tags, value float64) {}

func (*noopClient) Distribution(name string, tags Tags, value float64) {}

func (*noopClient) Timing(name string, tags Tags, duration time.Duration) {}

func (c *noopClient) WithTags(tags Tags) Client { return c }
