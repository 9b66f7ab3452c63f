package handler

import (
	"net/http"
	"time"

	"github.com/surgeproject/surge/internal/qr"
)

// issueResponse is the JSON shape returned by GET /issue?format=json.
type issueResponse struct {
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IssueToken handles GET /issue.
// It mints a fresh token and returns it as a scannable QR PNG by default,
// or as JSON with ?format=json. Tokens are unlinkable: calling twice yields
// two unrelated tokens.
func (s *Server) IssueToken(w http.ResponseWriter, r *http.Request) {
	tok, err := s.tokens.Issue(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "json" {
		writeJSON(w, http.StatusCreated, issueResponse{
			Token:     tok.ID.String(),
			CreatedAt: tok.CreatedAt,
			ExpiresAt: tok.ExpiresAt,
		})
		return
	}

	png, err := qr.PNG(s.qrBaseURL, tok.ID.String(), s.qrSize)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck — headers are already sent; nothing useful to do on failure.
	w.Write(png)
}
