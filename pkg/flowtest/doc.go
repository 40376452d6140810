// Package flowtest provides an in-process fake of the hosted workflow
// engine for tests and examples.
//
// Engine scripts flows and serves configuration records without any
// network. It implements flow.Interpreter and store.Store directly, so
// it can stand in for a flow.Client. Server exposes an Engine over the
// hosted engine's HTTP API, and Env wires an Engine, Server, and
// connected Client together for end-to-end tests. MockExecutor is a
// scripted flow.Executor for tests that bypass the interpreter entirely
package flowtest
