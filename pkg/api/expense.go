package api

type Expense struct {
	ID            string         `json:"id"`
	GroupID       string         `json:"group_id"`
	Title         string         `json:"title"`
	Total         string         `json:"total"`
	Mode          string         `json:"mode"`
	Participants  []Participant  `json:"participants"`
	Splits        []SplitEntry   `json:"splits,omitempty"`
	Contributions []Contribution `json:"contributions"`
	Shares        []Share        `json:"shares"`
	CreatedBy     string         `json:"created_by"`
	CreatedAt     int64          `json:"created_at"`
	UpdatedAt     int64          `json:"updated_at"`
}

type ExpenseSummary struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Total            string `json:"total"`
	Mode             string `json:"mode"`
	ParticipantCount int32  `json:"participant_count"`
	CreatedBy        string `json:"created_by"`
	CreatedAt        int64  `json:"created_at"`
}

type CalculateSharesRequest struct {
	Total        string        `json:"total"`
	Mode         string        `json:"mode,omitempty"`
	Participants []Participant `json:"participants,omitempty"`
	Splits       []SplitEntry  `json:"splits,omitempty"`
}

type CalculateSharesResponse struct {
	Total  string  `json:"total"`
	Shares []Share `json:"shares"`
}

type ValidateExpenseRequest struct {
	Total         string         `json:"total"`
	Mode          string         `json:"mode,omitempty"`
	Participants  []Participant  `json:"participants,omitempty"`
	Splits        []SplitEntry   `json:"splits,omitempty"`
	Contributions []Contribution `json:"contributions,omitempty"`
}

type ValidateExpenseResponse struct {
	Result ValidationResult `json:"result"`
}

type CreateExpenseRequest struct {
	GroupID       string         `json:"group_id"`
	Title         string         `json:"title,omitempty"`
	Total         string         `json:"total"`
	Mode          string         `json:"mode,omitempty"`
	Participants  []Participant  `json:"participants,omitempty"`
	Splits        []SplitEntry   `json:"splits,omitempty"`
	Contributions []Contribution `json:"contributions,omitempty"`
}

type CreateExpenseResponse struct {
	Expense  *Expense `json:"expense"`
	Warnings []string `json:"warnings,omitempty"`
}

type GetExpenseRequest struct {
	ExpenseID string `json:"expense_id"`
}

type GetExpenseResponse struct {
	Expense   *Expense `json:"expense"`
	GroupName string   `json:"group_name,omitempty"`
}

type UpdateExpenseRequest struct {
	ExpenseID     string         `json:"expense_id"`
	Title         string         `json:"title,omitempty"`
	Total         string         `json:"total"`
	Mode          string         `json:"mode,omitempty"`
	Participants  []Participant  `json:"participants,omitempty"`
	Splits        []SplitEntry   `json:"splits,omitempty"`
	Contributions []Contribution `json:"contributions,omitempty"`
}

type UpdateExpenseResponse struct {
	Expense  *Expense `json:"expense"`
	Warnings []string `json:"warnings,omitempty"`
}

type DeleteExpenseRequest struct {
	ExpenseID string `json:"expense_id"`
}

type DeleteExpenseResponse struct{}

type ListExpensesByGroupRequest struct {
	GroupID string `json:"group_id"`
}

type ListExpensesByGroupResponse struct {
	Expenses []*ExpenseSummary `json:"expenses"`
}
