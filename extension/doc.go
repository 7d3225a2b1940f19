// Package extension holds the executor registry. Executors are added by
// registration, not by editing a dispatcher: the engine evaluates registered
// executors in order and a guaranteed no-op fallback closes the set.
package extension
