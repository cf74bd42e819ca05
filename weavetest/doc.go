// Package weavetest provides fixtures shared by the tests of all packages:
// keys and addresses, a controllable clock, mock handlers and decorators and
// the Reverter that snapshots and restores the application state between
// test cases.
package weavetest
