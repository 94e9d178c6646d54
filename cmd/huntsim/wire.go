//go:build wireinject

package main

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/cory-johannsen/huntsim/internal/config"
)

func initializeApp(cfg config.Config, logger *zap.Logger) (*App, error) {
	wire.Build(providerSet)
	return nil, nil
}
