package logging

import (
	"go.uber.org/zap"
)

// New builds the process logger. Release mode gets JSON production output,
// anything else a development console logger.
func New(ginMode string) (*zap.Logger, error) {
	if ginMode == "release" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
