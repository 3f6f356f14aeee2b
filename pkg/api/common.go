package api

// Participant identifies someone an expense is split between.
type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// SplitEntry carries a percentage (percentage mode) or amount (custom mode).
type SplitEntry struct {
	Participant Participant `json:"participant"`
	Percentage  string      `json:"percentage,omitempty"`
	Amount      string      `json:"amount,omitempty"`
}

// Contribution is an amount a participant paid.
type Contribution struct {
	Participant Participant `json:"participant"`
	Amount      string      `json:"amount"`
}

// Share is a participant's computed portion, always two decimals.
type Share struct {
	Participant Participant `json:"participant"`
	Amount      string      `json:"amount"`
}

// ValidationResult mirrors calculator.ValidationResult.
type ValidationResult struct {
	OK       bool     `json:"ok"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}
