// Package galaxy builds the spiral point cloud.
//
// [Generate] maps [config.Parameters] to a pair of flat float32 buffers
// (x,y,z positions and r,g,b colors, three values per point). Points are
// dealt round robin onto evenly spaced branches, pushed out to a uniformly
// drawn radius, twisted by spin*radius and scattered by a power-law jitter
// whose exponent is the randomness power.
//
// The random source is injected, so a seeded [math/rand.Rand] gives
// reproducible buffers. Every point consumes exactly eight draws in a fixed
// order (radius, three magnitude/sign pairs, accent pick) whatever the
// [Options], which keeps a seed's geometry stable when options change.
package galaxy
