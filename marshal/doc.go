// Package marshal lifts values out of guest linear memory into Go.
//
// The guest hands strings to the host as a packed pointer/length Ref in a
// single i64 result. LiftString resolves the reference against the guest's
// memory, bounds-checks it, validates UTF-8, and copies the bytes into an
// independent Go string. The copy is deliberate: results must stay valid
// after the guest instance is recycled, and no two calls may observe each
// other.
package marshal
