package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"StockCharter/internal/calculator"
	"StockCharter/internal/model"
	"StockCharter/internal/series"
	"StockCharter/internal/store"
)

// Error messages surfaced to the chart. Everything else degrades to nulls.
const (
	msgNoData      = "No data available"
	msgNoDataRange = "No data for selected range"
)

// Handler serves the three front-end entry points.
type Handler struct {
	store *store.Store
}

// NewHandler creates a Handler over the given series store.
func NewHandler(st *store.Store) *Handler {
	return &Handler{store: st}
}

// ReadyResponse initializes the front end: available tickers plus the default
// date range, both dates null when no data exists anywhere.
type ReadyResponse struct {
	Tickers      []string `json:"tickers"`
	DefaultStart *string  `json:"default_start"`
	DefaultEnd   *string  `json:"default_end"`
}

// PlotResponse carries parallel date and price arrays for the chart. Null
// prices stay in place so x and y keep their index alignment.
type PlotResponse struct {
	X     []string   `json:"x"`
	Y     []*float64 `json:"y"`
	Error *string    `json:"error"`
}

// StatResponse carries a statistic overlay: a single line (upper only), a
// band (upper and lower), an error message, or all nulls.
type StatResponse struct {
	Stat  string   `json:"stat"`
	Upper *float64 `json:"upper"`
	Lower *float64 `json:"lower"`
	Error *string  `json:"error"`
}

// Ready handles GET /api/ready.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	tickers := h.store.Available()
	available := make(map[string]model.Series, len(tickers))
	for _, t := range tickers {
		available[t] = h.store.Load(t)
	}
	if tickers == nil {
		tickers = []string{}
	}

	resp := ReadyResponse{Tickers: tickers}
	if win, ok := series.DefaultWindow(available); ok {
		resp.DefaultStart = strPtr(win.Start.Format("2006-01-02"))
		resp.DefaultEnd = strPtr(win.End.Format("2006-01-02"))
	}
	writeJSON(w, http.StatusOK, resp)
}

// PlotData handles GET /api/plot?ticker=&start=&end=.
func (h *Handler) PlotData(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s := h.store.Load(strings.ToUpper(q.Get("ticker")))
	if s.Empty() {
		writeJSON(w, http.StatusOK, emptyPlot(msgNoData))
		return
	}

	win, ok := parseWindow(q.Get("start"), q.Get("end"))
	if !ok {
		// Unreadable dates select nothing, same as an out-of-data window.
		writeJSON(w, http.StatusOK, emptyPlot(msgNoDataRange))
		return
	}
	filtered := series.Slice(s, win)
	if filtered.Empty() || !filtered.HasClose {
		writeJSON(w, http.StatusOK, emptyPlot(msgNoDataRange))
		return
	}

	resp := PlotResponse{
		X: make([]string, len(filtered.Points)),
		Y: make([]*float64, len(filtered.Points)),
	}
	for i, p := range filtered.Points {
		resp.X[i] = p.Date.Format("01/02/2006")
		resp.Y[i] = p.Close
	}
	writeJSON(w, http.StatusOK, resp)
}

// StatValue handles GET /api/stat?ticker=&start=&end=&stat=.
func (h *Handler) StatValue(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	stat := q.Get("stat")
	resp := StatResponse{Stat: stat}

	s := h.store.Load(strings.ToUpper(q.Get("ticker")))
	if s.Empty() {
		writeJSON(w, http.StatusOK, resp)
		return
	}
	win, ok := parseWindow(q.Get("start"), q.Get("end"))
	if !ok {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	prices := calculator.ValidPrices(series.Slice(s, win))
	switch res := calculator.Compute(prices, stat); res.Kind {
	case model.StatValue:
		resp.Upper = &res.Value
	case model.StatBand:
		resp.Upper = &res.Upper
		resp.Lower = &res.Lower
	case model.StatError:
		resp.Error = &res.Message
	case model.StatEmpty:
		// nothing to draw
	}
	writeJSON(w, http.StatusOK, resp)
}

// parseWindow parses inclusive ISO date bounds from the request.
func parseWindow(start, end string) (model.Window, bool) {
	s, ok := store.ParseDate(start)
	if !ok {
		return model.Window{}, false
	}
	e, ok := store.ParseDate(end)
	if !ok {
		return model.Window{}, false
	}
	return model.Window{Start: s, End: e}, true
}

func emptyPlot(msg string) PlotResponse {
	return PlotResponse{X: []string{}, Y: []*float64{}, Error: &msg}
}

func strPtr(s string) *string { return &s }

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		w.Write([]byte(`{"error":"failed to encode response"}`))
	}
}
