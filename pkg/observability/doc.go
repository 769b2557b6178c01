/*
Package observability turns planner lifecycle hooks into metrics and logs.

Metrics registers Prometheus collectors and exposes hooks that count steps by rule,
committed operators by kind and finished plans. LoggingHooks writes the same events
to a structured logger. Both can be merged with domain.LifecycleHooks.Merge.
*/
package observability
