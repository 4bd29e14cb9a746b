package metadata

import (
	"fmt"
	"strings"
)

// UnknownPlatformError indicates a platform id that is not registered.
// It lists the available ids to aid debugging.
type UnknownPlatformError struct {
	ID        string
	Available []string
}

func (e *UnknownPlatformError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("unknown platform %q (no platforms registered)", e.ID)
	}
	return fmt.Sprintf("unknown platform %q (available: %s)", e.ID, strings.Join(e.Available, ", "))
}

// UnknownMetricError indicates a metric id not declared for a platform.
type UnknownMetricError struct {
	Platform string
	ID       string
}

func (e *UnknownMetricError) Error() string {
	return fmt.Sprintf("unknown metric %q for platform %q", e.ID, e.Platform)
}

// UnknownDimensionError indicates a dimension id not declared for a platform.
type UnknownDimensionError struct {
	Platform string
	ID       string
}

func (e *UnknownDimensionError) Error() string {
	return fmt.Sprintf("unknown dimension %q for platform %q", e.ID, e.Platform)
}
