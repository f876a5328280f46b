package web

import (
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/curriculum/internal/curriculum"
)

// FactsResponse is the body of GET /api/facts.
type FactsResponse struct {
	Year  *int              `json:"year,omitempty"`
	Count int               `json:"count"`
	Facts []curriculum.Fact `json:"facts"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, map[string]any{"status": "ok", "facts": len(s.facts)})
}

// handleFacts lists facts, optionally for one year (?year=N).
func (s *Server) handleFacts(w http.ResponseWriter, r *http.Request) {
	year, ok, err := yearParam(r)
	if err != nil {
		respondError(w, r, err, "BAD_YEAR", http.StatusBadRequest)
		return
	}

	resp := FactsResponse{Facts: s.facts}
	if ok {
		resp.Year = &year
		resp.Facts = filterYear(s.facts, year)
	}
	if resp.Facts == nil {
		resp.Facts = []curriculum.Fact{}
	}
	resp.Count = len(resp.Facts)

	writeJSON(w, r, resp)
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, s.plan)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	year, ok, err := yearParam(r)
	if err != nil {
		respondError(w, r, err, "BAD_YEAR", http.StatusBadRequest)
		return
	}

	facts := s.facts
	if ok {
		facts = filterYear(facts, year)
	}
	templ.Handler(indexPage(s.years, year, facts)).ServeHTTP(w, r)
}

// yearParam reads ?year=. ok is false when it is absent.
func yearParam(r *http.Request) (year int, ok bool, err error) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return 0, false, nil
	}
	year, err = strconv.Atoi(raw)
	if err != nil {
		return 0, false, errBadYear
	}
	return year, true, nil
}

func filterYear(facts []curriculum.Fact, year int) []curriculum.Fact {
	var out []curriculum.Fact
	for _, f := range facts {
		if f.Year == year {
			out = append(out, f)
		}
	}
	return out
}
