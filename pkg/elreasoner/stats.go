package elreasoner

// Summary is the human-readable classification report printed on
// success: concept count, role count, and inferred-subsumption count.
// Concept count excludes TOP and BOTTOM.
type Summary struct {
	Concepts             int
	Roles                int
	InferredSubsumptions int
}

// Summarize reduces Stats to the three counters the driver prints on
// success. Phase timings are reported separately by the caller, which
// has access to parse and build timings the core does not.
func Summarize(s Stats) Summary {
	concepts := s.NumConcepts - reservedConcepts
	if concepts < 0 {
		concepts = 0
	}
	return Summary{
		Concepts:             concepts,
		Roles:                s.NumRoles,
		InferredSubsumptions: s.InferredSubsumptions,
	}
}
