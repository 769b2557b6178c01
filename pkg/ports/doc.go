/*
Package ports defines the driven ports (interfaces) around the planner.

The planner itself needs nothing from the outside world. These interfaces let the
outer surfaces (CLI, HTTP, MCP) keep a catalog of named problems in whatever
backend is available.

# Key Interfaces

  - ProblemStore: Read/write catalog of problems (memory, Redis).
  - ProblemSource: Read-only catalog (a loam directory of problem documents).
  - DistributedLocker: Serialises writers to the same problem across replicas.
*/
package ports
