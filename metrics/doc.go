// Package metrics republishes an [shtp.Endpoint]'s diagnostic counters as
// Prometheus gauges on a private registry, served over HTTP via
// promhttp.HandlerFor. It is a
// read-only collaborator of the endpoint: it never calls Send, Service,
// or Listen, only Counters, which is safe to call from another goroutine.
package metrics
