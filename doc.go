/*
Package figspec turns an exported design tree into a reviewed, machine-checkable
UI specification, one decision at a time.

An external agent drives the workflow. figspec indexes the design once, then
hands out the next undecided node in breadth-first order together with its
parent's decision, the constraints that decision implies, the node's compact
facts and a set of hints. The agent answers with a decision patch. When every
node is decided the decisions are validated and exported as a nested tree for
UIKit or SwiftUI.

# State

All progress lives in a single versioned document kept in a ports.StateStore
(a JSON file by default, Redis or memory otherwise). Every Engine method loads
the document, runs one operation and, for writes, saves it back. Nothing is
cached between calls, so separate processes can share one document.

# Usage

	eng, err := figspec.New(memory.NewStore(), "checkout")
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if _, err := eng.Index(ctx, payload, domain.UIKit); err != nil {
		log.Fatal(err)
	}

	for {
		next, err := eng.Next(ctx)
		if err != nil {
			log.Fatal(err)
		}
		if next.Done {
			break
		}
		patch := decide(next) // the agent's decision as JSON
		if _, err := eng.Apply(ctx, patch); err != nil {
			log.Fatal(err)
		}
	}

	report, _ := eng.Validate(ctx)
	doc, _ := eng.Export(ctx, nil)

The figspec command keeps the document in a JSON file instead; library users
bring their own ports.StateStore or use the in-memory one shown above.
*/
package figspec
