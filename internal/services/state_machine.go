package services

import (
	"strings"

	dbm "storefront/internal/models/db_models"
)

// allowedTransitions is the whole lifecycle: every transaction leaves
// PENDING at most once and nothing leaves a terminal status.
var allowedTransitions = map[dbm.TransactionStatus][]dbm.TransactionStatus{
	dbm.TxnStatusPending: {
		dbm.TxnStatusCompleted,
		dbm.TxnStatusFailed,
		dbm.TxnStatusDeclined,
		dbm.TxnStatusVoided,
	},
	dbm.TxnStatusCompleted: {},
	dbm.TxnStatusFailed:    {},
	dbm.TxnStatusDeclined:  {},
	dbm.TxnStatusVoided:    {},
}

func CanTransition(from, to dbm.TransactionStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// MapSubmitStatus collapses the synchronous provider answer to the three
// outcomes the process-payment call distinguishes.
func MapSubmitStatus(providerStatus string) dbm.TransactionStatus {
	switch strings.ToUpper(strings.TrimSpace(providerStatus)) {
	case "APPROVED", "COMPLETED":
		return dbm.TxnStatusCompleted
	case "PENDING":
		return dbm.TxnStatusPending
	default:
		return dbm.TxnStatusFailed
	}
}

// MapWebhookStatus keeps the provider's declined and voided outcomes.
func MapWebhookStatus(providerStatus string) dbm.TransactionStatus {
	switch strings.ToUpper(strings.TrimSpace(providerStatus)) {
	case "APPROVED", "COMPLETED":
		return dbm.TxnStatusCompleted
	case "PENDING":
		return dbm.TxnStatusPending
	case "DECLINED":
		return dbm.TxnStatusDeclined
	case "VOIDED":
		return dbm.TxnStatusVoided
	default:
		return dbm.TxnStatusFailed
	}
}
