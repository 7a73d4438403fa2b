// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics holds the Prometheus counters for elections and votes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Reasons a vote is rejected
const (
	ReasonClosed       = "closed"
	ReasonAlreadyVoted = "already_voted"
	ReasonNotFound     = "not_found"
)

// Metrics is safe for concurrent use. A nil *Metrics records nothing.
type Metrics struct {
	ElectionsCreated prometheus.Counter
	ElectionsPurged  prometheus.Counter
	VotesCast        prometheus.Counter
	VotesRejected    *prometheus.CounterVec
}

// New registers the counters with reg. A nil reg leaves them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ElectionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "votio_elections_created_total",
			Help: "Elections created",
		}),
		ElectionsPurged: factory.NewCounter(prometheus.CounterOpts{
			Name: "votio_elections_purged_total",
			Help: "Expired elections deleted with their candidates and votes",
		}),
		VotesCast: factory.NewCounter(prometheus.CounterOpts{
			Name: "votio_votes_cast_total",
			Help: "Votes recorded",
		}),
		VotesRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "votio_votes_rejected_total",
			Help: "Vote attempts that were not recorded, by reason",
		}, []string{"reason"}),
	}
}

func (m *Metrics) ElectionCreated() {
	if m != nil {
		m.ElectionsCreated.Inc()
	}
}

func (m *Metrics) ElectionPurged() {
	if m != nil {
		m.ElectionsPurged.Inc()
	}
}

func (m *Metrics) VoteCast() {
	if m != nil {
		m.VotesCast.Inc()
	}
}

func (m *Metrics) VoteRejected(reason string) {
	if m != nil {
		m.VotesRejected.WithLabelValues(reason).Inc()
	}
}
