// Package metrics registers the Prometheus instruments tracking the claim
// lifecycle.  Counters are package-level and registered through promauto,
// so importing packages can bump them without plumbing a registry around.
package metrics

import (
    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promauto"
)

var (
    // ClaimsIssued counts successfully issued claims.
    ClaimsIssued = promauto.NewCounter(prometheus.CounterOpts{
        Name: "instantfork_claims_issued_total",
        Help: "Number of deal claims issued.",
    })

    // ClaimFailures counts rejected claim attempts by reason
    // (not_found, not_claimable, sold_out, duplicate, error).
    ClaimFailures = promauto.NewCounterVec(prometheus.CounterOpts{
        Name: "instantfork_claim_failures_total",
        Help: "Number of rejected claim attempts by reason.",
    }, []string{"reason"})

    // Redemptions counts successful redemptions.
    Redemptions = promauto.NewCounter(prometheus.CounterOpts{
        Name: "instantfork_redemptions_total",
        Help: "Number of claims redeemed.",
    })

    // RedemptionFailures counts failed redemptions by reason
    // (not_found, already_redeemed, expired, mismatch, bad_code, error).
    RedemptionFailures = promauto.NewCounterVec(prometheus.CounterOpts{
        Name: "instantfork_redemption_failures_total",
        Help: "Number of failed redemption attempts by reason.",
    }, []string{"reason"})
)
