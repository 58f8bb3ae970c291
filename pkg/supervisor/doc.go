// Package supervisor drives a single startup attempt of the gateway:
// synthesis, validation/promotion, auxiliary process startup, and
// finally the exec handoff to the primary listening process.
//
// # State Machine
//
// Each attempt walks a fixed state machine:
//
//	Init → Synthesizing → Validating → Promoted → StartingAuxiliary → ExecPrimary
//	                          ↓
//	                        Failed
//
// Failed is terminal: the attempt returns a categorized error and the
// process exits nonzero. There are no internal retries: restart policy
// (backoff, retry count) belongs entirely to the external process
// manager.
//
// # Fail-Closed
//
// The supervisor never starts anything unless promotion has succeeded:
// it re-checks the rendered config's Validated flag before touching a
// process. Auxiliary commands are best-effort (a failed auxiliary
// start is logged and ignored), but the primary is different: the
// process image is replaced via exec, so termination signals from the
// external process manager reach the real server directly instead of
// an intermediary shell. On success Run never returns.
package supervisor
