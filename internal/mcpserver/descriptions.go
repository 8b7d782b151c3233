package mcpserver

// Tool descriptions with interpretation guidance for LLMs.
// Each description explains what the tool does, when to use it,
// and how to interpret results.

func describeSite() string {
	return `Runs the full static analysis of a Drafter site: dataclass records,
route handlers, component usage, composition edges, and complexity scores.

USE WHEN:
- Getting an overall picture of a student's Drafter project
- Reviewing a submission before detailed feedback
- Checking for unused dataclasses or fields

INTERPRETING RESULTS:
- Records list each dataclass with fields, rendered field types, and
  the records each field type pulls in (composition)
- Routes list each @route handler with the Drafter components it builds
  and the state fields it touches
- Warnings flag dataclasses that are never composed or used and fields
  that are never accessed
- totalComplexity sums per-record state complexity across the site

METRICS RETURNED:
- Per-record: fields, dependencies, complexity, usage total
- Per-route: signature, component counts, fields used, calls
- Site: component totals, composition and call edges, warnings`
}

func describeRecords() string {
	return `Lists the dataclass records of a Drafter site with per-field detail.

USE WHEN:
- Inspecting how a site models its state
- Checking which field types compose other records
- Finding expensive state (dict, tuple, set, or unknown types score high)

INTERPRETING RESULTS:
- Field complexity: primitives 0.1, lists and known records 1,
  dict/tuple/set 10, anything unrecognized 100
- A record's complexity is the sum of its field complexities
- usageTotal counts attribute accesses observed inside route handlers
- dependsOn lists only records declared in the same file; unknown type
  names are reported separately and never drawn as edges`
}

func describeRoutes() string {
	return `Lists the @route handlers of a Drafter site.

USE WHEN:
- Tracing how pages link to each other
- Checking which components a handler renders
- Finding handlers that never touch site state

INTERPRETING RESULTS:
- components counts every Drafter component call inside the handler body
- fieldsUsed lists attribute names accessed on any value in the handler
- calls lists plain function calls plus navigation targets taken from
  Link, Button, and SubmitButton arguments`
}

func describeGraph() string {
	return `Builds the composition graph (record uses record) and the call
graph (route reaches route or helper) of a Drafter site, optionally with
PageRank centrality.

USE WHEN:
- Visualizing site structure (output includes Mermaid source)
- Finding unreachable pages or dead-end navigation
- Spotting cyclic navigation between handlers

INTERPRETING RESULTS:
- composition edges connect dataclasses through field types
- callGraph edges connect handlers to the names they call or link to
- With include_metrics, nodes carry PageRank plus in/out degree and
  cycles list strongly connected groups of handlers`
}

func describeComplexity() string {
	return `Scores dataclass state complexity and route body structure.

USE WHEN:
- Prioritizing which parts of a site need review
- Comparing submissions by how much they exercise the language

INTERPRETING RESULTS:
- Record complexity follows field-type weights; a record full of
  primitives scores well under 1, one holding dicts scores 10+
- Section scores bucket syntax-tree nodes into unusual (x1000),
  important (x100), mundane (x10), and drafter (x1) categories and
  report the weighted sum at 1/1000 scale
- High section scores mean the body leans on constructs unusual for an
  introductory Drafter site`
}
