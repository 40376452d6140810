// Package flow configures and invokes flows hosted by a platform
// workflow engine.
//
// An Invocation is the fluent entry point: it selects the flow to run,
// either by literal name or by looking the name up in a configuration
// record, gathers inputs, and declares the outputs the caller expects.
// Running an invocation resolves the flow name, creates an interpreter
// session through an Executor, starts it, and reads the declared outputs
// back as session variables.
//
// Client binds all of this to the engine's HTTP API. The executor and
// the record store behind lookups are injected dependencies, so tests
// can swap either without touching process-wide state
package flow
