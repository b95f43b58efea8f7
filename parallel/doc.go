// Package parallel runs a function across many inputs with a bounded worker
// pool. Map preserves input order; Stream feeds a flow through concurrent
// workers without ordering guarantees.
package parallel
