// Package driver assembles parsed program fragments by functional
// composition, attaches them to an input LazyRead thunk, and runs the
// head/tail extraction loop that turns the resulting stream into process
// output and an exit code.
package driver
