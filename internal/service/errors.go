package service

import "errors"

// BOM edge validation errors. Handlers match these with errors.Is to pick
// the response status; no partial edge is ever persisted once one fires.
var (
	// ErrSelfReference a part cannot appear in its own BOM.
	ErrSelfReference = errors.New("a part cannot contain itself as a BOM item")

	// ErrRecursiveBom the new edge would close a cycle in the composition graph.
	ErrRecursiveBom = errors.New("recursive BOM")

	// ErrDuplicateEdge an edge for this (part, sub-part) pair already exists;
	// callers should update the existing item instead.
	ErrDuplicateEdge = errors.New("BOM item already exists for this part and sub-part")

	// ErrInvalidQuantity quantity must be a positive whole number.
	ErrInvalidQuantity = errors.New("quantity must be a positive whole number")

	// ErrNotBuildable the parent side of a BOM edge must be a buildable part.
	ErrNotBuildable = errors.New("part is not marked as buildable")

	// ErrNotConsumable the sub-part side of a BOM edge must be a consumable part.
	ErrNotConsumable = errors.New("part is not marked as consumable")
)

// ErrInvalidParent re-parenting a category under itself or one of its
// descendants would break the forest invariant.
var ErrInvalidParent = errors.New("category cannot be moved under its own subtree")

// ErrStructuralCorruption is returned when a traversal finds a cycle in
// data that must be acyclic (category forest, persisted BOM graph). It
// indicates a bug or external data corruption and is never absorbed
// silently.
var ErrStructuralCorruption = errors.New("structural corruption detected")
