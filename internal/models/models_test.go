package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON_MergeCopies(t *testing.T) {
	base := JSON{MetaOrderID: "o-1", MetaError: "old"}
	merged := base.Merge(map[string]interface{}{MetaError: "new", MetaErrorType: "transfer"})

	assert.Equal(t, "new", merged.String(MetaError))
	assert.Equal(t, "o-1", merged.String(MetaOrderID))
	assert.Equal(t, "old", base.String(MetaError))
	assert.NotContains(t, base, MetaErrorType)
}

func TestJSON_String(t *testing.T) {
	var empty JSON
	assert.Empty(t, empty.String(MetaOrderID))
	assert.Empty(t, JSON{MetaOrderID: 42}.String(MetaOrderID))
}

func TestJSON_ValueAndScan(t *testing.T) {
	v, err := JSON{MetaRefundOf: "tx-1"}.Value()
	require.NoError(t, err)

	var scanned JSON
	require.NoError(t, scanned.Scan(v))
	assert.Equal(t, "tx-1", scanned.String(MetaRefundOf))

	require.NoError(t, scanned.Scan(`{"a":"b"}`))
	assert.Equal(t, "b", scanned.String("a"))

	require.NoError(t, scanned.Scan(nil))
	assert.Empty(t, scanned)

	assert.Error(t, scanned.Scan(12))

	var nilJSON JSON
	v, err = nilJSON.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("{}"), v)
}

func TestJSON_MarshalNil(t *testing.T) {
	raw, err := json.Marshal(WalletTransaction{ID: "tx-1"})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"metadata":{}`)
}

func TestWalletTransaction_Helpers(t *testing.T) {
	uid := "u-1"
	tx := WalletTransaction{UserID: &uid, Metadata: JSON{MetaOrderID: "o-9"}}
	assert.Equal(t, "u-1", tx.Owner())
	assert.Equal(t, "o-9", tx.OrderID())

	guest := WalletTransaction{}
	assert.Empty(t, guest.Owner())
	assert.Empty(t, guest.OrderID())
}

func TestProfile_HasWallet(t *testing.T) {
	var nilProfile *Profile
	assert.False(t, nilProfile.HasWallet())

	empty := ""
	assert.False(t, (&Profile{WalletID: &empty}).HasWallet())

	id := "w-1"
	assert.True(t, (&Profile{WalletID: &id}).HasWallet())
}

func TestClaimsPermissions(t *testing.T) {
	admin := UserClaims{Role: RoleAdmin, Permissions: GetDefaultPermissions(RoleAdmin)}
	assert.True(t, admin.HasPermission(PermissionWriteAdmin))

	customer := UserClaims{Role: RoleCustomer, Permissions: GetDefaultPermissions(RoleCustomer)}
	assert.True(t, customer.HasPermission(PermissionPaymentWrite))
	assert.False(t, customer.HasPermission(PermissionReadAdmin))

	assert.Empty(t, GetDefaultPermissions("unknown"))
}

func TestWholeCents(t *testing.T) {
	assert.True(t, WholeCents(decimal.RequireFromString("9.99")))
	assert.True(t, WholeCents(decimal.RequireFromString("9.990")))
	assert.True(t, WholeCents(decimal.NewFromInt(2000)))
	assert.False(t, WholeCents(decimal.RequireFromString("9.995")))
	assert.False(t, WholeCents(decimal.RequireFromString("0.001")))
}
