/*
Package ports defines the driven ports (interfaces) for the figspec engine.

These interfaces decouple the workflow from where the state document lives,
from how concurrent writers are serialized and from the transports that drive it.

# Key Interfaces

  - Engine: The workflow operations that transports (HTTP, MCP) expose.
  - StateStore: Persists and loads state documents by key (file, Redis, memory).
  - DistributedLocker: Serializes read-modify-write cycles on one key across processes.
*/
package ports
