// Package collision answers geometric queries between convex planar shapes:
// closest distance (GJK), linear shape and ray casting (conservative advancement),
// and continuous collision detection (time of impact).
//
// Every query is a pure function over fixed-capacity value types. The only state
// threaded across calls is the SimplexCache a caller may keep per shape pair to
// warm-start GJK; the package itself retains nothing, so independent shape pairs
// can be queried concurrently without locking.
package collision
