package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var PurchasesRegistered = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "lojinha_purchases_total",
	Help: "Purchases registered, by item code.",
}, []string{"item"})

var PurchaseVolume = promauto.NewCounter(prometheus.CounterOpts{
	Name: "lojinha_purchase_centavos_total",
	Help: "Total purchase volume in cents.",
})

var CreditGranted = promauto.NewCounter(prometheus.CounterOpts{
	Name: "lojinha_credit_granted_centavos_total",
	Help: "Credit granted by administrators, in cents.",
})

var ReportsExported = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "lojinha_reports_exported_total",
	Help: "Monthly reports exported, by output format.",
}, []string{"format"})
