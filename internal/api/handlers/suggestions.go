package handlers

import (
	"net/http"

	"smart-task-api/internal/api/response"
	"smart-task-api/internal/logging"
	"smart-task-api/internal/tasks"
)

// SuggestionsHandler serves smart task title suggestions
type SuggestionsHandler struct {
	suggester *tasks.Suggester
	logger    logging.Logger
}

// NewSuggestionsHandler creates a new suggestions handler
func NewSuggestionsHandler(suggester *tasks.Suggester, logger logging.Logger) *SuggestionsHandler {
	return &SuggestionsHandler{
		suggester: suggester,
		logger:    logger.WithComponent("suggestions"),
	}
}

// GetSmartSuggestions handles GET /tasks/suggestions/smart. When the
// engine finds no usable keywords it falls back to a fixed default set.
func (h *SuggestionsHandler) GetSmartSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.suggester.GenerateSuggestions(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "suggestion generation failed", "error", err)
		response.WriteInternalError(w, "Failed to generate suggestions", err.Error())
		return
	}

	if len(suggestions) == 0 {
		suggestions = tasks.DefaultSuggestions()
	}

	response.WriteSuccess(w, suggestions)
}
