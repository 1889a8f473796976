// Package dispatch resolves custom URL scheme invocations such as
// onboarding://settings.dock into a closed set of system operations.
package dispatch
