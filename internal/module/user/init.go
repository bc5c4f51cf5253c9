package user

import (
	"campus-discover/internal/global/logger"
	"log/slog"
)

var log *slog.Logger

type ModuleUser struct{}

func (m *ModuleUser) GetName() string {
	return "User"
}

func (m *ModuleUser) Init() {
	log = logger.New("User")
}
