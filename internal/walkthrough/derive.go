package walkthrough

// DerivePlanIndex returns the plan index after the trace cursor moves from
// one entry to another. Only the step tags of the two entries matter: the
// plan index steps by one toward the move's direction when the tag changes,
// clamped to [0, planCount-1], and is left alone within a tag.
func DerivePlanIndex(planIndex int, from, to TraceEntry, planCount int) int {
	switch {
	case to.StepTag > from.StepTag:
		return min(planIndex+1, planCount-1)
	case to.StepTag < from.StepTag:
		return max(planIndex-1, 0)
	default:
		return planIndex
	}
}
