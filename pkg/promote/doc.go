// Package promote validates rendered gateway configuration and installs
// it atomically at the authoritative path.
//
// # Discovery
//
// The authoritative config location differs between base-image layouts,
// so the pristine template is discovered by probing an ordered list of
// candidate directories. The first directory containing the template
// selects the deployment variant. If no candidate matches, discovery
// fails with *PathNotFoundError, never a silent default path.
//
// # Promotion Protocol
//
// Promotion is fail-closed and out-of-place:
//
//  1. The rendered text is written to a temporary file beside the
//     authoritative path (same filesystem, so the final rename is
//     atomic).
//  2. The temporary artifact is validated in isolation, never the
//     file currently backing the live listener.
//  3. Only on success is the authoritative path replaced, by rename.
//
// If validation fails, the previously authoritative file (from a prior
// successful run, if any) is left byte-for-byte untouched, the
// temporary file is removed, and the caller exits nonzero without
// starting any listener.
//
// # Validation
//
// Structural validation checks the rendered text in isolation: balanced
// braces, terminated directives, no leftover template placeholders, and
// the presence of the listener, health and route directives. A
// deployment can additionally configure an external check command (for
// example ["nginx", "-t", "-c", "{config}"]) which runs against the
// temporary file before promotion.
package promote
