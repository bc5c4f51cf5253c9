package auth

import (
	"campus-discover/internal/global/logger"
	"log/slog"
)

var log *slog.Logger

type ModuleAuth struct{}

func (a *ModuleAuth) GetName() string {
	return "Auth"
}

func (a *ModuleAuth) Init() {
	log = logger.New("Auth")
}
