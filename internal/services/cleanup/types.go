package cleanup

import (
	"time"

	"chowpay/internal/models"

	"github.com/shopspring/decimal"
)

// Action names accepted by Dispatch
const (
	ActionDeleteTransaction      = "delete_transaction"
	ActionRefundToWallet         = "refund_to_wallet"
	ActionRefundAndDeletePending = "refund_and_delete_pending"
	ActionDeleteAllUserPending   = "delete_all_user_pending"
	ActionMarkCompleted          = "mark_completed"
)

// Action is one operator request.
type Action struct {
	Name          string
	TransactionID string
	UserID        string
	Amount        decimal.Decimal
	OperatorID    string
}

// ActionResult reports what an action changed.
type ActionResult struct {
	Action              string           `json:"action"`
	Message             string           `json:"message"`
	TransactionID       string           `json:"transaction_id,omitempty"`
	RefundTransactionID string           `json:"refund_transaction_id,omitempty"`
	UserID              string           `json:"user_id,omitempty"`
	Amount              *decimal.Decimal `json:"amount,omitempty"`
	NewBalance          *decimal.Decimal `json:"new_balance,omitempty"`
	Deleted             int64            `json:"deleted"`
	Changed             bool             `json:"changed"`
}

// IssueReport is the query-side view of unresolved ledger rows.
type IssueReport struct {
	Groups     []IssueGroup `json:"groups"`
	Summary    Summary      `json:"summary"`
	Duplicates []Duplicate  `json:"duplicates"`
}

type Summary struct {
	TotalIssues   int `json:"total_issues"`
	Pending       int `json:"pending"`
	Failed        int `json:"failed"`
	UsersAffected int `json:"users_affected"`
	Duplicates    int `json:"duplicates"`
}

// IssueGroup holds the unresolved rows attributed to one owner.
type IssueGroup struct {
	Key          string                     `json:"key"`
	Owner        OwnerView                  `json:"owner"`
	Transactions []models.WalletTransaction `json:"transactions"`
	Pending      int                        `json:"pending"`
	Failed       int                        `json:"failed"`
	TotalAmount  decimal.Decimal            `json:"total_amount"`
}

// Duplicate flags a pending row that matches a completed row of the same
// user and amount.
type Duplicate struct {
	TransactionID                 string          `json:"transaction_id"`
	UserID                        string          `json:"user_id"`
	Amount                        decimal.Decimal `json:"amount"`
	Reference                     string          `json:"reference"`
	CreatedAt                     time.Time       `json:"created_at"`
	LikelyLegitimateTransactionID string          `json:"likely_legitimate_transaction_id"`
}

const opCleanup = "cleanup_action"
