// Package handler implements the reconciliation state machine for the S3
// object resource type.
//
// A long-running mutation is split across invocations: the fresh invocation
// performs the side-effecting backend call at most once and returns an
// in-progress event carrying a callback context and a delay hint; the
// orchestrator re-invokes with that context, and the resumed invocation
// confirms stabilization by reading the object back. The handler holds no
// state between invocations; everything needed to resume travels in the
// callback context and the resource model.
//
// Handlers are wired through an explicit dispatch table built at startup:
//
//	h := handler.New(metrics)
//	dispatch := h.Dispatch()
//	event := dispatch[handler.ActionCreate](ctx, sess, req, cb)
package handler
