package cleanup

import (
	"context"
	"fmt"
	"sort"

	"chowpay/internal/models"

	"github.com/shopspring/decimal"
)

var unresolvedStatuses = []string{models.TransactionStatusPending, models.TransactionStatusFailed}

// ListIssues returns every pending or failed row grouped by owner, with
// duplicate flags. userID restricts the scan to one customer.
func (s *service) ListIssues(ctx context.Context, userID *string) (*IssueReport, error) {
	rows, err := s.transactions.ListByStatuses(ctx, unresolvedStatuses, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unresolved transactions: %w", err)
	}

	report := &IssueReport{
		Groups:     []IssueGroup{},
		Duplicates: []Duplicate{},
	}
	if len(rows) == 0 {
		return report, nil
	}

	idx := s.buildOwnerIndex(ctx, rows)
	groups := map[string]*IssueGroup{}
	var order []string
	for _, r := range rows {
		owner := idx.resolve(r)
		key := owner.Key()
		g, ok := groups[key]
		if !ok {
			g = &IssueGroup{Key: key, Owner: owner.View(), TotalAmount: decimal.Zero}
			groups[key] = g
			order = append(order, key)
		}
		g.Transactions = append(g.Transactions, r)
		g.TotalAmount = g.TotalAmount.Add(r.Amount)
		switch r.Status {
		case models.TransactionStatusPending:
			g.Pending++
			report.Summary.Pending++
		case models.TransactionStatusFailed:
			g.Failed++
			report.Summary.Failed++
		}
	}
	for _, key := range order {
		report.Groups = append(report.Groups, *groups[key])
	}

	completed, err := s.transactions.ListCompletedForUsers(ctx, userIDsOf(rows))
	if err != nil {
		return nil, fmt.Errorf("failed to load completed transactions: %w", err)
	}
	report.Duplicates = findDuplicates(append(append([]models.WalletTransaction{}, rows...), completed...))

	report.Summary.TotalIssues = len(rows)
	report.Summary.UsersAffected = len(report.Groups)
	report.Summary.Duplicates = len(report.Duplicates)
	return report, nil
}

// findDuplicates groups rows by (user_id, amount). In a group holding at
// least one completed row, every pending row is flagged against the
// earliest completed row.
func findDuplicates(rows []models.WalletTransaction) []Duplicate {
	type groupKey struct {
		userID string
		amount string
	}
	groups := map[groupKey][]models.WalletTransaction{}
	seen := map[string]bool{}
	for _, r := range rows {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		k := groupKey{userID: r.Owner(), amount: r.Amount.StringFixed(2)}
		groups[k] = append(groups[k], r)
	}

	dups := []Duplicate{}
	for _, group := range groups {
		anchor := earliestCompleted(group)
		if anchor == nil {
			continue
		}
		for _, r := range group {
			if r.Status != models.TransactionStatusPending {
				continue
			}
			dups = append(dups, Duplicate{
				TransactionID:                 r.ID,
				UserID:                        r.Owner(),
				Amount:                        r.Amount,
				Reference:                     r.Reference,
				CreatedAt:                     r.CreatedAt,
				LikelyLegitimateTransactionID: anchor.ID,
			})
		}
	}

	sort.Slice(dups, func(i, j int) bool {
		if dups[i].CreatedAt.Equal(dups[j].CreatedAt) {
			return dups[i].TransactionID < dups[j].TransactionID
		}
		return dups[i].CreatedAt.Before(dups[j].CreatedAt)
	})
	return dups
}

func earliestCompleted(group []models.WalletTransaction) *models.WalletTransaction {
	var anchor *models.WalletTransaction
	for i := range group {
		r := &group[i]
		if r.Status != models.TransactionStatusCompleted {
			continue
		}
		if anchor == nil || r.CreatedAt.Before(anchor.CreatedAt) ||
			(r.CreatedAt.Equal(anchor.CreatedAt) && r.ID < anchor.ID) {
			anchor = r
		}
	}
	return anchor
}
