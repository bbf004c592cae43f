package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusApplied, StatusShortlisted, true},
		{StatusApplied, StatusInterviewing, true},
		{StatusApplied, StatusOffered, false},
		{StatusShortlisted, StatusApplied, false},
		{StatusInterviewing, StatusOffered, true},
		{StatusOffered, StatusHired, true},
		{StatusOffered, StatusDeclined, true},
		{StatusHired, StatusWithdrawn, false},
		{StatusRejected, StatusShortlisted, false},
		{StatusWithdrawn, StatusApplied, false},
		{Status("bogus"), StatusApplied, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTerminal(t *testing.T) {
	for _, s := range []Status{StatusHired, StatusDeclined, StatusRejected, StatusWithdrawn} {
		assert.True(t, s.Terminal(), s)
		assert.False(t, s.Active(), s)
	}
	for _, s := range []Status{StatusApplied, StatusShortlisted, StatusInterviewing, StatusOffered} {
		assert.False(t, s.Terminal(), s)
		assert.True(t, s.Active(), s)
	}
	assert.False(t, Status("bogus").Terminal())
}

func TestWithdrawnReachableFromEveryActiveStatus(t *testing.T) {
	for _, s := range Statuses {
		if s.Active() {
			assert.True(t, CanTransition(s, StatusWithdrawn), s)
		}
	}
}

func TestEmployerSettable(t *testing.T) {
	assert.True(t, EmployerSettable(StatusShortlisted))
	assert.True(t, EmployerSettable(StatusRejected))
	assert.False(t, EmployerSettable(StatusOffered))
	assert.False(t, EmployerSettable(StatusWithdrawn))
	assert.False(t, EmployerSettable(StatusHired))
}
