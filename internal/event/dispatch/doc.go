// Package dispatch delivers runtime callbacks on behalf of a thread token.
//
// A Task is one callback invocation; it reports whether the event was
// handled. Two dispatchers are provided:
//
//   - SyncDispatcher runs tasks in the caller's goroutine. The html5 runtime
//     uses it for registrations bound to the calling thread.
//
//   - AsyncDispatcher runs tasks on its own worker goroutines. The html5
//     runtime starts one single-worker AsyncDispatcher per non-calling thread
//     token, so callbacks for that token run one at a time, in order.
//
// # Panic Recovery
//
// A task that panics never takes the dispatcher down with it. The panic is
// recovered, recorded in the Result and passed to the configured
// PanicHandler.
//
// # Usage
//
//	d := dispatch.NewSyncDispatcher(
//	    dispatch.WithPanicHandler(func(recovered any, stack []byte) {
//	        logger.Error("callback panic: %v", recovered)
//	    }),
//	)
//	result := d.Dispatch(ctx, func() bool { return cb(eventType, payload, userData) })
//	if result.Handled {
//	    // ...
//	}
package dispatch
