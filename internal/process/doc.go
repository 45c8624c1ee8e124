// Package process starts subprocesses in their own process group, so a
// canceled conversion does not leave pandoc or Chrome children running.
package process
