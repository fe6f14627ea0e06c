package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/SscSPs/school_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// now is the clock used for default report dates.
var now = time.Now

func today() time.Time {
	return domain.DateOnly(now())
}

// requireUserID returns the authenticated user id or answers 401.
func requireUserID(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

// asOfOrToday defaults a missing as-of date to today.
func asOfOrToday(asOf *time.Time) time.Time {
	if asOf == nil {
		return today()
	}
	return domain.DateOnly(*asOf)
}

// periodOrYearToDate defaults a missing end to today and a missing start to January 1st of
// the end's year.
func periodOrYearToDate(from, to *time.Time) (time.Time, time.Time) {
	end := asOfOrToday(to)
	start := time.Date(end.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	if from != nil {
		start = domain.DateOnly(*from)
	}
	return start, end
}
