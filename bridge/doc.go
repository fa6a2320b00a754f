// Package bridge provides the high-level API for the greeting bridge.
//
// A Bridge owns a wazero runtime, the compiled greeting guest, and a pool
// of guest instances. Greeting invokes the guest's single export and
// marshals the returned text across the boundary:
//
//	b, err := bridge.New(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer b.Close(ctx)
//
//	text, err := b.Greeting(ctx)
//
// Bridge is safe for concurrent use; each Greeting call borrows one
// instance from the pool for the duration of the call.
package bridge
