package service

// Request and response messages of BillService. Amounts travel as decimal
// strings with two places ("12.50") so no precision is lost in transit.

type ParticipantView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type SplitView struct {
	ParticipantID   string `json:"participantId"`
	ParticipantName string `json:"participantName"`
	Amount          string `json:"amount"`
	IsEqual         bool   `json:"isEqual"`
}

type ExpenseView struct {
	ID          string      `json:"id"`
	Description string      `json:"description"`
	Amount      string      `json:"amount"`
	PaidBy      string      `json:"paidBy"`
	PaidByName  string      `json:"paidByName"`
	Splits      []SplitView `json:"splits"`
}

type BillView struct {
	Title        string            `json:"title"`
	Date         string            `json:"date"`
	Participants []ParticipantView `json:"participants"`
	Expenses     []ExpenseView     `json:"expenses"`
}

type BalanceView struct {
	ParticipantID string `json:"participantId"`
	Name          string `json:"name"`
	NetBalance    string `json:"netBalance"`
	TotalPaid     string `json:"totalPaid"`
	TotalOwed     string `json:"totalOwed"`
	Status        string `json:"status"`
}

type SettlementView struct {
	From     string `json:"from"`
	FromName string `json:"fromName"`
	To       string `json:"to"`
	ToName   string `json:"toName"`
	Amount   string `json:"amount"`
	Text     string `json:"text"`
}

type ShareView struct {
	ParticipantID string `json:"participantId"`
	Name          string `json:"name"`
	Amount        string `json:"amount"`
	Percent       string `json:"percent"`
}

type GetBillRequest struct{}

type GetBillResponse struct {
	Bill BillView `json:"bill"`
}

// UpdateBillRequest changes the fields that are set.
type UpdateBillRequest struct {
	Title *string `json:"title,omitempty"`
	Date  *string `json:"date,omitempty"`
}

type UpdateBillResponse struct {
	Bill BillView `json:"bill"`
}

type AddParticipantRequest struct {
	Name string `json:"name"`
}

type AddParticipantResponse struct {
	Participant ParticipantView `json:"participant"`
}

type RemoveParticipantRequest struct {
	ParticipantID string `json:"participantId"`
}

type RemoveParticipantResponse struct{}

type AddExpenseRequest struct {
	Description    string            `json:"description"`
	Amount         string            `json:"amount"`
	PaidBy         string            `json:"paidBy"`
	SplitEqually   bool              `json:"splitEqually"`
	ParticipantIDs []string          `json:"participantIds"`
	CustomAmounts  map[string]string `json:"customAmounts,omitempty"`
}

type AddExpenseResponse struct {
	Expense ExpenseView `json:"expense"`
}

type RemoveExpenseRequest struct {
	ExpenseID string `json:"expenseId"`
}

type RemoveExpenseResponse struct{}

// PreviewSplitRequest mirrors the expense form while it is being filled in.
type PreviewSplitRequest struct {
	Amount         string            `json:"amount"`
	ParticipantIDs []string          `json:"participantIds"`
	CustomAmounts  map[string]string `json:"customAmounts,omitempty"`
}

type PreviewSplitResponse struct {
	EqualShares []SplitView `json:"equalShares"`
	Remaining   string      `json:"remaining"`
}

type GetResultsRequest struct{}

type GetResultsResponse struct {
	Empty       bool             `json:"empty"`
	Message     string           `json:"message,omitempty"`
	Total       string           `json:"total"`
	Balances    []BalanceView    `json:"balances"`
	Settlements []SettlementView `json:"settlements"`
}

type GetSummaryRequest struct{}

type GetSummaryResponse struct {
	Total  string      `json:"total"`
	PaidBy []ShareView `json:"paidBy"`
	OwedBy []ShareView `json:"owedBy"`
}

type ResetBillRequest struct{}

type ResetBillResponse struct {
	Reset bool     `json:"reset"`
	Bill  BillView `json:"bill"`
}
