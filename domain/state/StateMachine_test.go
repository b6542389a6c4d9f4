package state_test

import (
	"solarflow/domain/state"
	"testing"

	. "github.com/onsi/gomega"
)

func buildStateMachine() *state.StateMachine {
	pending := state.State{Name: "pending", Category: state.InBacklog, Order: 1}
	inprogress := state.State{Name: "inprogress", Category: state.InProcess, Order: 2}
	completed := state.State{Name: "completed", Category: state.Done, Order: 3}
	return state.NewStateMachine(
		[]state.State{pending, inprogress, completed},
		[]state.Transition{
			{Name: "begin", From: pending, To: inprogress},
			{Name: "finish", From: inprogress, To: completed},
		})
}

func TestAvailableTransitions(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should only match configured forward edges", func(t *testing.T) {
		sm := buildStateMachine()

		Expect(len(sm.AvailableTransitions("pending", "inprogress"))).To(Equal(1))
		Expect(sm.AvailableTransitions("pending", "inprogress")[0].Name).To(Equal("begin"))
		Expect(len(sm.AvailableTransitions("inprogress", "completed"))).To(Equal(1))

		Expect(sm.AvailableTransitions("pending", "completed")).To(BeEmpty())
		Expect(sm.AvailableTransitions("completed", "pending")).To(BeEmpty())
		Expect(sm.AvailableTransitions("completed", "inprogress")).To(BeEmpty())
		Expect(sm.AvailableTransitions("unknown", "pending")).To(BeEmpty())
	})

	t.Run("empty from or to should act as a wildcard", func(t *testing.T) {
		sm := buildStateMachine()

		Expect(len(sm.AvailableTransitions("pending", ""))).To(Equal(1))
		Expect(len(sm.AvailableTransitions("", "completed"))).To(Equal(1))
		Expect(len(sm.AvailableTransitions("", ""))).To(Equal(2))
	})
}

func TestFindState(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should find states by name", func(t *testing.T) {
		sm := buildStateMachine()

		found, ok := sm.FindState("inprogress")
		Expect(ok).To(BeTrue())
		Expect(found.Category).To(Equal(state.InProcess))

		_, ok = sm.FindState("unknown")
		Expect(ok).To(BeFalse())
	})
}
