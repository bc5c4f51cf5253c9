package activity

import (
	"campus-discover/internal/global/logger"
	"log/slog"
)

var log *slog.Logger

type ModuleActivity struct{}

func (m *ModuleActivity) GetName() string {
	return "Activity"
}

func (m *ModuleActivity) Init() {
	log = logger.New("Activity")
}
