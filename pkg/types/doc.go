// Package types defines the core data model shared across the kinship
// harness: the serialized family-tree node, the eleven kinship relation
// kinds, and the relation table produced by inference.
//
// A tree is a strict tree only until spouses are attached; the family
// graph derived from it gives a child two parents, so downstream code
// must treat it as a general graph.
package types
