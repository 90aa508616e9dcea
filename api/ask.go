package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Paul4805/AI-Dashboard-Tool/domain"
	"github.com/labstack/echo/v4"
)

// Ask answers a natural-language question as a report or a chart.
// POST /ask
func (h *Handler) Ask(c echo.Context) error {
	var req domain.AskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "invalid request body"})
	}

	result, err := h.svc.AskQuestion(c.Request().Context(), req.Question, req.Format)
	if err != nil {
		var sqlErr *domain.SQLError
		var procErr *domain.ProcessingError
		switch {
		case errors.As(err, &sqlErr):
			return c.JSON(http.StatusInternalServerError, map[string]string{"detail": sqlErr.Error()})
		case errors.As(err, &procErr):
			return c.JSON(http.StatusInternalServerError, map[string]string{"detail": procErr.Error()})
		default:
			log.Printf("ERROR: ask failed: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"detail": "internal server error"})
		}
	}

	return c.JSON(http.StatusOK, result)
}

// GetHistory returns recent query history entries, newest first.
// GET /history
func (h *Handler) GetHistory(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = 50
	}

	entries, err := h.svc.History(c.Request().Context(), limit)
	if err != nil {
		log.Printf("ERROR: failed to get query history: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get history"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"history": entries,
	})
}
