/*
Package cleanup is the operator-facing reconciliation engine.

The query side lists every pending or failed ledger row, grouped by the
customer it belongs to, and flags pending rows that look like duplicates
of an already completed payment. The action side exposes the
compensating operations an operator may apply after review:

	delete_transaction        remove one pending or failed row
	refund_to_wallet          credit a customer and raise the mirror
	refund_and_delete_pending refund a stuck debit and remove it
	delete_all_user_pending   remove every pending or failed row of a user
	mark_completed            flip a pending row to completed

Nothing here runs automatically. Duplicate flags are a heuristic: two real
payments of the same amount by one customer are flagged too, and an
operator decides.
*/
package cleanup
