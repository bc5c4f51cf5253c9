package category

import (
	"campus-discover/internal/global/logger"
	"log/slog"
)

var log *slog.Logger

type ModuleCategory struct{}

func (m *ModuleCategory) GetName() string {
	return "Category"
}

func (m *ModuleCategory) Init() {
	log = logger.New("Category")
}
