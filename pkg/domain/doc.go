/*
Package domain contains the core domain models for the figspec decision workflow.

It defines the indexed design tree, the externally supplied decisions and the
single persisted state document that ties them together. This package is kept
free of I/O and persistence concerns, following Hexagonal Architecture principles.

# Key Entities

  - NodeRecord: One included design node with its parent link, depth, children and Facts.
  - Facts: The bounded, deterministic projection of a raw design node.
  - Decision: A binding mapping from a node to a target component (open payload, required component.base).
  - State: The versioned document holding the node map, breadth-first order and decisions.
  - Profile: Per UI-system class names used by hints, validation and export.
*/
package domain
