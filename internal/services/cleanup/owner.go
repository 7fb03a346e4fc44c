package cleanup

import (
	"context"

	"chowpay/internal/models"

	"go.uber.org/zap"
)

// OwnerKind tags an OwnerResolution.
type OwnerKind string

const (
	OwnerKnown   OwnerKind = "known"
	OwnerGuest   OwnerKind = "guest"
	OwnerUnknown OwnerKind = "unknown"
)

// OwnerResolution is who a ledger row belongs to: a known profile
// (directly or through its order), a guest identified by the order's
// contact details, or nobody.
type OwnerResolution struct {
	Kind     OwnerKind
	Profile  *models.Profile
	ViaOrder bool
	Name     string
	Email    string
	OrderID  string
}

func Known(p *models.Profile, viaOrder bool) OwnerResolution {
	return OwnerResolution{Kind: OwnerKnown, Profile: p, ViaOrder: viaOrder}
}

func GuestViaOrder(name, email, orderID string) OwnerResolution {
	return OwnerResolution{Kind: OwnerGuest, Name: name, Email: email, OrderID: orderID}
}

func Unknown() OwnerResolution {
	return OwnerResolution{Kind: OwnerUnknown}
}

// Key groups rows of the same owner.
func (o OwnerResolution) Key() string {
	switch o.Kind {
	case OwnerKnown:
		return o.Profile.ID
	case OwnerGuest:
		if o.Email != "" {
			return "guest:" + o.Email
		}
		return "guest:" + o.OrderID
	default:
		return string(OwnerUnknown)
	}
}

// OwnerView is the JSON shape of an owner.
type OwnerView struct {
	Kind     OwnerKind `json:"kind"`
	UserID   string    `json:"user_id,omitempty"`
	Name     string    `json:"name,omitempty"`
	Email    string    `json:"email,omitempty"`
	WalletID string    `json:"wallet_id,omitempty"`
	ViaOrder bool      `json:"via_order,omitempty"`
}

func (o OwnerResolution) View() OwnerView {
	v := OwnerView{Kind: o.Kind, ViaOrder: o.ViaOrder}
	switch o.Kind {
	case OwnerKnown:
		v.UserID = o.Profile.ID
		v.Name = o.Profile.FullName
		v.Email = o.Profile.Email
		if o.Profile.WalletID != nil {
			v.WalletID = *o.Profile.WalletID
		}
	case OwnerGuest:
		v.Name = o.Name
		v.Email = o.Email
	}
	return v
}

// ownerIndex resolves owners for a batch of rows with at most three
// queries: direct profiles, referenced orders, and order owners.
type ownerIndex struct {
	profiles map[string]*models.Profile
	orders   map[string]*models.Order
}

func (s *service) buildOwnerIndex(ctx context.Context, rows []models.WalletTransaction) *ownerIndex {
	idx := &ownerIndex{
		profiles: map[string]*models.Profile{},
		orders:   map[string]*models.Order{},
	}

	s.loadProfiles(ctx, idx, userIDsOf(rows))

	var orderIDs []string
	seen := map[string]bool{}
	for _, r := range rows {
		if _, ok := idx.profiles[r.Owner()]; ok {
			continue
		}
		if oid := r.OrderID(); oid != "" && !seen[oid] {
			seen[oid] = true
			orderIDs = append(orderIDs, oid)
		}
	}
	if len(orderIDs) == 0 {
		return idx
	}

	orders, err := s.orders.GetByIDs(ctx, orderIDs)
	if err != nil {
		s.logger.Warn("failed to load orders for owner resolution", zap.Error(err))
		return idx
	}
	var orderOwners []string
	for i := range orders {
		o := &orders[i]
		idx.orders[o.ID] = o
		if o.UserID != nil && *o.UserID != "" {
			if _, ok := idx.profiles[*o.UserID]; !ok {
				orderOwners = append(orderOwners, *o.UserID)
			}
		}
	}
	s.loadProfiles(ctx, idx, orderOwners)
	return idx
}

func (s *service) loadProfiles(ctx context.Context, idx *ownerIndex, ids []string) {
	if len(ids) == 0 {
		return
	}
	profiles, err := s.profiles.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn("failed to load profiles for owner resolution", zap.Error(err))
		return
	}
	for i := range profiles {
		idx.profiles[profiles[i].ID] = &profiles[i]
	}
}

// resolve walks profile, then order owner, then order contact details.
func (idx *ownerIndex) resolve(r models.WalletTransaction) OwnerResolution {
	if p, ok := idx.profiles[r.Owner()]; ok {
		return Known(p, false)
	}
	order, ok := idx.orders[r.OrderID()]
	if !ok {
		return Unknown()
	}
	if order.UserID != nil {
		if p, ok := idx.profiles[*order.UserID]; ok {
			return Known(p, true)
		}
	}
	return GuestViaOrder(order.CustomerName, order.CustomerEmail, order.ID)
}

func userIDsOf(rows []models.WalletTransaction) []string {
	var ids []string
	seen := map[string]bool{}
	for _, r := range rows {
		if id := r.Owner(); id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}
