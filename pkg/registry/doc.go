// Package registry provides a generic insertion-ordered registry used to
// collect benchmark test cases before a run. Unlike a plain map, iteration
// order over Keys() is the order of first registration, and registering a
// name twice replaces the item without moving it.
package registry
