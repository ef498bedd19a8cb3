package health

import "context"

// ReadinessChecker reports whether the article index has been loaded.
type ReadinessChecker interface {
	Ready() bool
}

// SourcePinger checks availability of the store behind the article source.
type SourcePinger interface {
	Ping(ctx context.Context) error
}
