package logger

import "go.uber.org/zap"

// New builds the process logger. Debug mode gets the human-readable
// development encoder; anything else logs structured JSON.
func New(mode string) (*zap.Logger, error) {
	if mode == "debug" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
