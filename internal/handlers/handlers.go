package handlers

import (
	"go.uber.org/zap"

	"github.com/damaloy/marketplace-api/internal/auth"
	"github.com/damaloy/marketplace-api/internal/payments"
	"github.com/damaloy/marketplace-api/internal/store"
)

// HandlerConfig groups dependencies shared by all route handlers.
type HandlerConfig struct {
	DB       *store.Store
	Logger   *zap.Logger
	Gateway  payments.Gateway
	Verifier *auth.Verifier
}
