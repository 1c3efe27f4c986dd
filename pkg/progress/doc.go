// Package progress defines the outcome contract between a handler invocation
// and the orchestrator: a single progress Event per invocation, in one of
// three states (IN_PROGRESS, SUCCESS, FAILED), plus the fixed taxonomy of
// handler error codes and the classifier that maps backend error codes onto
// it.
//
// Events are built through typed constructors so each state carries exactly
// the payload it requires; an ambiguous success shape cannot be assembled
// from handler code.
package progress
