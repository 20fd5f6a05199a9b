// Package csync provides small thread-safe collections.
//
// The UI runs as a single cooperative event loop, but the disk watcher
// and externally-owned representation registry are touched from other
// goroutines. Everything that crosses that boundary lives here, behind
// a read-write mutex, so the rest of the codebase can stay lock-free.
//
//	pending := csync.NewMap[string, struct{}]()
//	pending.Set(path, struct{}{})
//	for path := range pending.Take() {
//		// drained atomically
//	}
package csync
