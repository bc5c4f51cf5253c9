package upload

import (
	"campus-discover/internal/global/logger"
	"log/slog"
)

var log *slog.Logger

type ModuleUpload struct{}

func (m *ModuleUpload) GetName() string {
	return "Upload"
}

func (m *ModuleUpload) Init() {
	log = logger.New("Upload")
}
