package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/damaloy/marketplace-api/internal/store"
)

// writeStoreError translates a store error into the API error contract:
// invalid ids are 400, missing documents 404, anything else a generic 500
// with the detail kept in the log.
func writeStoreError(c *gin.Context, log *zap.Logger, err error, invalidMsg, notFoundMsg, failMsg string) {
	switch {
	case errors.Is(err, store.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": invalidMsg})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": notFoundMsg})
	default:
		log.Error(failMsg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": failMsg})
	}
}
