// Package walkthrough implements the step-synchronization state machine that
// drives a pre-authored program walkthrough.
//
// A walkthrough replays a fixed [TraceEntry] sequence against a coarser list
// of [PlanStep] values. Nothing is executed: the trace, hints and program
// output are authored data held in a [Content] bundle. The package keeps
// three derived views consistent as a single trace position moves.
//
// # Architecture
//
// A [Walkthrough] owns exactly two integers, the trace index and the plan
// index. [Walkthrough.Advance], [Walkthrough.Retreat] and
// [Walkthrough.Reset] are the only mutations. Each successful move calls
// [DerivePlanIndex] with the entries at the old and new positions, so the
// plan cursor only steps when the trace crosses a step-tag boundary and a
// retreat exactly undoes an advance.
//
// [Project] is a pure function from content and [Position] to a [Frame]:
// the revealed source lines (every line up to the maximum line referenced
// by the trace prefix), the highlighted line with its hint, the current
// locals, and the cached output snapshot for the position's output phase.
//
// # Basic Usage
//
//	w, err := walkthrough.New(content)
//	if err != nil {
//	    return err // content broke an invariant
//	}
//
//	w.Advance()
//	frame := w.Frame()
//	fmt.Println(frame.CurrentLine, frame.OutputText)
//
// # Thread Safety
//
// A [Walkthrough] is owned by a single caller and is not safe for concurrent
// mutation. [Content] is immutable after [New] and may be shared between
// any number of walkthroughs.
package walkthrough
