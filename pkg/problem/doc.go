// Package problem describes planning problems as documents.
//
// A Problem pairs a start and a goal arrangement with a step bound. Problems are
// read from YAML or JSON files, decoded from generic maps (MCP tool arguments,
// loam front matter) and validated in two layers: struct tags first, then the
// block-world rules shared with the planner.
//
//	p, err := problem.Load("problems/sussman.yaml")
//	if err != nil {
//	    return err
//	}
//	if err := p.Validate(); err != nil {
//	    for _, fe := range problem.FieldErrors(err) {
//	        log.Println(fe.Field, fe.Reason)
//	    }
//	}
package problem
