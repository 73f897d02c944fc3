// Package commands contains the three orchestrator workflows (migrate,
// linksaves, restore) plus the read-only status query.
//
// Each workflow is a linear pipeline with a single failure exit. All
// failures are converted into a failed OperationResult at the workflow
// boundary; nothing is thrown past the orchestrator. Completed steps
// are never rolled back: the step ordering guarantees that any failure
// point still leaves the save data recoverable.
//
// Callers must not run two workflows concurrently against the same save
// directory. The workflows do no internal locking; the CLI satisfies
// this by running one workflow per invocation.
package commands
