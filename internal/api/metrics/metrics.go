// Package metrics defines and registers all custom Prometheus metrics for
// the game portal API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gameportal"

// FriendActionsTotal counts social graph mutations.
// Labels:
//   - action: "send", "accept", "reject", "cancel", "remove"
//   - result: "ok" or "error"
var FriendActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "friend_actions_total",
		Help:      "Total number of friend graph operations, by action and result.",
	},
	[]string{"action", "result"},
)

// TurnsTransferredTotal counts turns moved by successful peer transfers.
var TurnsTransferredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "turns_transferred_total",
		Help:      "Total number of play turns moved by peer-to-peer transfers.",
	},
)

// TurnsGrantedTotal counts turns added by admin grants.
var TurnsGrantedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "turns_granted_total",
		Help:      "Total number of play turns granted by administrators.",
	},
)

// TransferErrorsTotal counts rejected transfers.
// Label:
//   - reason: "invalid_amount", "self_transfer", "not_friends",
//     "insufficient_balance", "not_found", "internal"
var TransferErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transfer_errors_total",
		Help:      "Total number of rejected turn transfers, by reason.",
	},
	[]string{"reason"},
)

// OTPIssuedTotal counts phone verification codes issued.
var OTPIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_issued_total",
		Help:      "Total number of phone verification codes issued.",
	},
)

// RegistrationsTotal counts newly registered accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered.",
	},
)
