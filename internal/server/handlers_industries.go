package server

import (
	"net/http"

	"github.com/jonathan/industry-match/internal/industry"
)

func (s *Server) handleParseIndustries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"input": q,
		"tags":  industry.ParseIndustryTags(q),
	})
}

func (s *Server) handleClassifyPosition(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"title": title,
		"tags":  industry.IndustriesForPosition(title),
	})
}

// handleRelatedIndustries lists the adjacent industries of a tag. Unknown tags have none.
func (s *Server) handleRelatedIndustries(w http.ResponseWriter, r *http.Request) {
	tag := industry.CanonicalTag(r.PathValue("tag"))
	related := industry.RelatedIndustries(tag)
	if related == nil {
		related = []string{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"tag":     tag,
		"related": related,
	})
}
