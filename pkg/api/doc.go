// Package api defines the shared types exchanged between flow clients,
// stores, and the hosted engine: argument maps, flow and session
// identifiers, output declarations, configuration records, and the HTTP
// message bodies
package api
