package handler

import (
	"errors"
	"net/http"

	"github.com/dafibh/fintrack/fintrack-backend/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ReadPolicy controls how read endpoints answer when the record store is down.
// Writes never degrade.
type ReadPolicy struct {
	DegradeOnStoreUnavailable bool
}

// readError answers a failed read. With degradation enabled, an unavailable
// store yields 200 with the empty payload and the degraded header; every other
// error, including data integrity failures, goes through writeError.
func (p ReadPolicy) readError(c echo.Context, err error, action string, empty interface{}) error {
	if p.DegradeOnStoreUnavailable && errors.Is(err, domain.ErrStoreUnavailable) {
		log.Warn().Err(err).Str("path", c.Request().URL.Path).Msg("Store unavailable, serving degraded " + action)
		c.Response().Header().Set(DegradedHeader, DegradedStoreUnavailable)
		return c.JSON(http.StatusOK, empty)
	}
	return writeError(c, err, action)
}
