// Package metrics provides Prometheus-based instrumentation for the cache
// wrapper's stdin/child/stdout pipeline.
//
// Unlike a request-serving backend, a single invocation of this tool has one
// "request": its own process lifetime. Metrics here describe throughput and
// cache effectiveness over that lifetime, and are only ever exposed if the
// caller opts in with --metrics-addr.
package metrics
