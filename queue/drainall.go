package queue

import "github.com/hashicorp/go-multierror"

// DrainAll drains every coordinator given, continuing past a failed
// Coordinator.Drain to attempt the rest, and returns their aggregated
// failures. It returns nil if every coordinator drained cleanly.
func DrainAll(coordinators ...*Coordinator) error {
	var result *multierror.Error
	for _, c := range coordinators {
		if err := c.Drain(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
