/*
Package goalstack is a goal-stack planner for the blocks world.

Given a start and a goal arrangement of labelled blocks (plus a one-block arm), it
computes a sequence of STACK, UNSTACK, PICKUP and PUTDOWN operators that turns one
into the other. Planning is incremental: the caller can advance one decomposition
step at a time and inspect the goal stack, the committed operators and every
intermediate world state along the way.

# Concept

The planner keeps a LIFO goal stack of subgoals (single conditions, conjunctions and
pending operators). Each step looks at the top entry and applies exactly one rule:
pop a subgoal that already holds, commit an operator, re-check a conjunction, or
expand an unmet condition into the operator that establishes it. There is no search
and no backtracking, so a run must always be bounded.

# Usage

	start := domain.NewArrangement("", []string{"A", "B", "C"})
	goal := domain.NewArrangement("", []string{"B"}, []string{"A"}, []string{"C"})

	planner, err := goalstack.New(start, goal, 36)
	if err != nil {
		log.Fatal(err) // invalid shape, duplicate block or block-set mismatch
	}

	res, err := planner.Solve(context.Background())
	if err != nil {
		log.Fatal(err) // e.g. domain.ErrIterationLimitExceeded
	}
	for _, op := range res.Plan {
		fmt.Println(op)
	}

Step-wise execution:

	planner.Prepare()
	for !planner.Done() {
		rec, err := planner.Step(ctx)
		if err != nil {
			break
		}
		fmt.Println(rec.Index, rec.Rule, rec.Current)
	}
*/
package goalstack
