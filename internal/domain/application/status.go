package application

var transitions = map[Status][]Status{
	StatusApplied:      {StatusShortlisted, StatusInterviewing, StatusRejected, StatusWithdrawn},
	StatusShortlisted:  {StatusInterviewing, StatusRejected, StatusWithdrawn},
	StatusInterviewing: {StatusOffered, StatusRejected, StatusWithdrawn},
	StatusOffered:      {StatusHired, StatusDeclined, StatusRejected, StatusWithdrawn},
}

// Statuses lists every status in pipeline order.
var Statuses = []Status{
	StatusApplied,
	StatusShortlisted,
	StatusInterviewing,
	StatusOffered,
	StatusHired,
	StatusDeclined,
	StatusRejected,
	StatusWithdrawn,
}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

func (s Status) Terminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

// Active covers applications still moving through the pipeline.
func (s Status) Active() bool {
	return s.Valid() && !s.Terminal()
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// EmployerSettable reports whether an employer may move an application to s
// directly. Withdrawals and offer outcomes come from the candidate side, and
// offered is reached by creating an offer.
func EmployerSettable(s Status) bool {
	switch s {
	case StatusShortlisted, StatusInterviewing, StatusRejected:
		return true
	}
	return false
}
