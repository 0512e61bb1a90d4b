// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Entity resolution fans out over components with two distinct join
// policies: gatherAll tolerates per-branch failure, gatherOrFail fails the
// whole call on the first branch error.
package services
