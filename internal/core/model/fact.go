package model

// Fact is a statement of the form Predicate(Subject, Object).
type Fact struct {
	Predicate string `json:"predicate"`
	Subject   string `json:"subject"`
	Object    string `json:"object"`
}

type RepairSuggestion struct {
	Index     int    `json:"index"`
	Original  string `json:"original"`
	Statement string `json:"statement,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Valid     bool   `json:"valid"`
	Error     string `json:"error,omitempty"`
}
