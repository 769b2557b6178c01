/*
Package domain contains the core model of the goalstack planner.

It defines the blocks-world vocabulary shared by the engine, the validator and every
adapter: blocks and arrangements, predicate atoms and condition sets, the fixed
operator knowledge base, and the tagged agenda entries pushed onto the goal stack.
This package is kept pure and free of external dependencies like I/O or persistence,
following Hexagonal Architecture principles.

# Key Entities

  - Arrangement: stacks of blocks on the table (bottom first) plus the arm.
  - Atom: one ground predicate fact (ONTABLE, ON, CLEAR, HOLDING, ARMEMPTY).
  - Conditions: the unordered set of atoms true in one world-state snapshot.
  - Operator: a concrete STACK, UNSTACK, PICKUP or PUTDOWN application.
  - Entry: a goal-stack slot holding an Atom, a Conjunction or an Operator.

The Condition Model lives in ToConditions and FromConditions, which translate an
Arrangement into its atom set and back.
*/
package domain
