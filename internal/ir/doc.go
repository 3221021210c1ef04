// Package ir provides the trait solver's intermediate representation terms
// and their canonical text rendering.
//
// This package contains term definitions and the renderer only. All other
// internal packages import ir; ir imports nothing internal. This ensures IR
// remains the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Terms are immutable trees; the renderer never mutates or retains them
//   - Bound variables are De Bruijn indices (depth 0 = innermost binder)
//   - Rendering is deterministic: same term + same resolver -> same text
//   - Item names come from a Resolver installed on the context, never from
//     the terms themselves
package ir
