// Package registry manages named RangeVecs that are shared between goroutines.
//
// A rangevec.RangeVec itself is not safe for concurrent use. The registry keeps
// every RangeVec behind its own read-write lock and stores the entries in an
// xsync.MapOf, so goroutines working on different names never contend, and
// goroutines working on the same name are serialised.
//
// Access is closure based, like the mutation API of the RangeVec itself:
//
//	reg := registry.New(rangevec.New[int64])
//
//	reg.Update("cpu", func(rv *rangevec.RangeVec[int64]) {
//		rv.Set(42, 1)
//	})
//
//	reg.View("cpu", func(rv *rangevec.RangeVec[int64]) {
//		fmt.Println(rv)
//	})
//
// Creation and deletion of entries are logged at debug level to the "registry" logger.
package registry
