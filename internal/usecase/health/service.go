package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Check names.
const (
	CheckIndex  = "index"
	CheckSource = "source"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	index  ReadinessChecker
	source SourcePinger
}

// New creates a Service. source can be nil for sources without a backing store.
func New(index ReadinessChecker, source SourcePinger) *Service {
	return &Service{index: index, source: source}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if s.index.Ready() {
		checks[CheckIndex] = CheckOK
	} else {
		checks[CheckIndex] = CheckError
	}

	if s.source != nil {
		if err := s.source.Ping(ctx); err != nil {
			checks[CheckSource] = CheckError
		} else {
			checks[CheckSource] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}
