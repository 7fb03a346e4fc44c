/*
Package wallet keeps the local profile mirror of provider wallets fresh.

The provider is the only source of truth for balances. This package reads
it and copies balance, active flag and virtual account fields onto the
profile so the UI can show them without a provider round trip. Nothing in
here authorises a payment.

Usage:

	svc := wallet.NewService(profiles, providerClient, cacheSvc, wallet.Config{}, logger, metrics)

	// Pull and mirror, surfacing errors
	res, err := svc.Sync(ctx, userID, walletID)

	// Pull and mirror, logging errors only
	svc.SyncQuietly(ctx, userID, walletID)

	// Read the mirrored view, cached in Redis
	view, err := svc.GetWallet(ctx, userID)

Provider reads made through FetchBalance retry with exponential backoff.
Transfers are never retried anywhere in the service.
*/
package wallet
