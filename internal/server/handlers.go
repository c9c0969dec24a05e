// Package server exposes the calculation services over a small REST surface.
// Requests carry wire-format ledgers (fixed-point integer encodings);
// responses are plain JSON records with no formatting obligations — currency
// and locale formatting belong to the front-end.
package server

import (
	"net/http"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/ledger"
	"github.com/bobmcallan/folio/internal/models"
)

// Server holds the handler dependencies.
type Server struct {
	performance interfaces.PerformanceService
	holdings    interfaces.HoldingsService
	config      *common.Config
	logger      *common.Logger
}

// NewServer creates a new REST server.
func NewServer(performance interfaces.PerformanceService, holdings interfaces.HoldingsService, config *common.Config, logger *common.Logger) *Server {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Server{
		performance: performance,
		holdings:    holdings,
		config:      config,
		logger:      logger,
	}
}

// Handler builds the HTTP mux with the full middleware chain applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/performance", s.handlePerformance)
	mux.HandleFunc("/api/holdings", s.handleHoldings)
	mux.HandleFunc("/api/holdings/grouped", s.handleGroupedHoldings)
	mux.HandleFunc("/api/charts/costbasis", s.handleCostBasisChart)

	var h http.Handler = mux
	h = rateLimitMiddleware(s.config.Server.RatePerSecond, s.config.Server.RateBurst)(h)
	h = loggingMiddleware(s.logger)(h)
	h = correlationIDMiddleware(h)
	h = corsMiddleware(h)
	h = recoveryMiddleware(s.logger)(h)
	return h
}

// handleHealth responds to GET/HEAD /api/health with {"status":"ok"}.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleVersion responds to GET/HEAD /api/version with version info.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, common.VersionInfo())
}

// PerformanceRequest is the wire payload for POST /api/performance.
type PerformanceRequest struct {
	Transactions []ledger.WireTransaction `json:"transactions"`
	Valuations   []ledger.WireValuation   `json:"valuations"`
}

func (s *Server) handlePerformance(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req PerformanceRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	transactions, err := ledger.DecodeTransactions(req.Transactions)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	valuations, err := ledger.DecodeValuations(req.Valuations)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, s.performance.ComputePerformance(transactions, valuations))
}

// HoldingsRequest is the wire payload for POST /api/holdings and
// /api/holdings/grouped. Prices are plain currency units, not fixed-point —
// they come from the quote layer, not the ledger.
type HoldingsRequest struct {
	Transactions []ledger.WireTransaction `json:"transactions"`
	Securities   []models.Security        `json:"securities,omitempty"`
	Prices       map[string]float64       `json:"prices,omitempty"`
}

func (s *Server) decodeHoldingsRequest(w http.ResponseWriter, r *http.Request) ([]models.Transaction, map[string]models.Security, interfaces.PriceLookup, bool) {
	var req HoldingsRequest
	if !DecodeJSON(w, r, &req) {
		return nil, nil, nil, false
	}

	transactions, err := ledger.DecodeTransactions(req.Transactions)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return nil, nil, nil, false
	}

	securities := make(map[string]models.Security, len(req.Securities))
	for _, sec := range req.Securities {
		securities[sec.Ref] = sec
	}

	prices := req.Prices
	lookup := func(securityRef string) float64 { return prices[securityRef] }

	return transactions, securities, lookup, true
}

func (s *Server) handleHoldings(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	transactions, securities, lookup, ok := s.decodeHoldingsRequest(w, r)
	if !ok {
		return
	}

	WriteJSON(w, http.StatusOK, s.holdings.ComputeHoldings(transactions, securities, lookup))
}

func (s *Server) handleGroupedHoldings(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	transactions, securities, lookup, ok := s.decodeHoldingsRequest(w, r)
	if !ok {
		return
	}

	WriteJSON(w, http.StatusOK, s.holdings.ComputeGroupedHoldings(transactions, securities, lookup))
}

// CostBasisChartRequest is the wire payload for POST /api/charts/costbasis.
type CostBasisChartRequest struct {
	Transactions []ledger.WireTransaction `json:"transactions"`
	SecurityRef  string                   `json:"security_ref"`
	OwnerKey     string                   `json:"owner_key,omitempty"`
	LatestPrice  float64                  `json:"latest_price"`
}

func (s *Server) handleCostBasisChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req CostBasisChartRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.SecurityRef == "" {
		WriteError(w, http.StatusBadRequest, "security_ref is required")
		return
	}

	transactions, err := ledger.DecodeTransactions(req.Transactions)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	png, err := s.holdings.RenderCostBasisHistory(transactions, req.SecurityRef, req.OwnerKey, req.LatestPrice)
	if err != nil {
		WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
