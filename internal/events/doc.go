// Package events carries domain events from the services to side-effect
// handlers (metrics, cache invalidation) without the services knowing
// which handlers exist.
//
// Events are emitted after the write they describe has committed, and
// dispatch is synchronous. A failing handler never undoes the write.
package events
