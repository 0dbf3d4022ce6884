package handlers

import (
	"net/http"

	"github.com/isdelr/mindmate-be/internal/models"
)

// Help returns the frequently asked questions.
func Help(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.FAQs)
}
