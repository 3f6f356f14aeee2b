package api

type Group struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Members   []Participant `json:"members"`
	CreatedBy string        `json:"created_by"`
	CreatedAt int64         `json:"created_at"`
}

type CreateGroupRequest struct {
	Name    string        `json:"name"`
	Members []Participant `json:"members,omitempty"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"group_id"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type UpdateGroupRequest struct {
	GroupID string        `json:"group_id"`
	Name    string        `json:"name"`
	Members []Participant `json:"members"`
}

type UpdateGroupResponse struct {
	Group *Group `json:"group"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"group_id"`
}

type DeleteGroupResponse struct{}

// MemberBalance amounts are decimal strings; NetBalance is negative for debtors.
type MemberBalance struct {
	MemberID   string `json:"member_id"`
	MemberName string `json:"member_name"`
	NetBalance string `json:"net_balance"`
	TotalPaid  string `json:"total_paid"`
	TotalOwed  string `json:"total_owed"`
}

type DebtEdge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type GetGroupBalancesRequest struct {
	GroupID string `json:"group_id"`
}

type GetGroupBalancesResponse struct {
	MemberBalances []*MemberBalance `json:"member_balances"`
	Debts          []*DebtEdge      `json:"debts"`
}
