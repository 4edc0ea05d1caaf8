// Package walker provides structural traversal of untyped definition trees.
//
// The walker descends into every mapping value and sequence element of a
// *yaml.Node tree. It never resolves or follows a $ref, so it terminates on
// any finite document, including documents whose references form cycles.
// Detecting reference cycles is the caller's concern (see package filter).
//
// # Quick Start
//
// Collect every $ref in a subtree:
//
//	refs := walker.CollectRefs(pathsNode)
//	for _, ref := range refs.Sorted() {
//	    fmt.Println(ref)
//	}
//
// # Flow Control
//
// Visitors return an [Action] to control traversal:
//
//   - [Continue]: descend into children and continue with siblings
//   - [SkipChildren]: skip the children of the current node
//   - [Stop]: stop the entire walk immediately
//
// Example skipping vendor extensions:
//
//	walker.Walk(root, func(wc *walker.WalkContext, node *yaml.Node) walker.Action {
//	    if strings.HasPrefix(wc.Key, "x-") {
//	        return walker.SkipChildren
//	    }
//	    return walker.Continue
//	})
package walker
