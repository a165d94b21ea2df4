// Package document implements the persistence protocol for frame graphs:
// a JSON document of frame records with polymorphic strategy nodes, a
// registered allow-list of strategy kinds, reference-preserving candidate
// markers keyed by first-occurrence order, and a native persistence phase
// sequenced around the structural one.
package document
