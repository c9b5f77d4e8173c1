package shtp

import "github.com/ardnew/shtp/pkg"

// EventCallback is invoked synchronously whenever the endpoint detects a
// non-fatal protocol anomaly. kind identifies what happened; see
// [pkg.EventKind].
type EventCallback func(cookie any, kind pkg.EventKind)

func (e *Endpoint) emit(kind pkg.EventKind) {
	pkg.LogAt(pkg.EventLevel(kind), pkg.ComponentEndpoint, "protocol event", "kind", kind.String())
	if e.eventCB != nil {
		e.eventCB(e.eventCookie, kind)
	}
}
