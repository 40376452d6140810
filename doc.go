// Package flowextensions provides a fluent Go client for invoking flows
// hosted by a platform workflow engine.
//
// A flow is configured and executed through a flow.Invocation, obtained
// from a flow.Client connected to the engine's HTTP API. The invocation
// selects a flow either by literal name or by looking the name up in a
// configuration record, collects named inputs, declares the outputs the
// caller expects back, and then runs the flow through an interpreter
// session:
//
//	client := flow.NewClient("http://localhost:8080")
//	result, err := client.NewInvocation().
//	    Named("send-welcome").
//	    With("email", "user@example.com").
//	    Required("status").
//	    Run(ctx)
//
// Configuration records can be served by the engine itself or by a local
// store (see the store package). The flowtest package provides a complete
// in-process fake of the hosted engine for tests and examples.
package flowextensions
