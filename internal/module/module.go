package module

import (
	"campus-discover/internal/module/activity"
	"campus-discover/internal/module/auth"
	"campus-discover/internal/module/category"
	"campus-discover/internal/module/ping"
	"campus-discover/internal/module/upload"
	"campus-discover/internal/module/user"

	"github.com/gin-gonic/gin"
)

type Module interface {
	GetName() string
	Init()
	InitRouter(r *gin.RouterGroup)
}

var Modules []Module

func registerModule(m []Module) {
	Modules = append(Modules, m...)
}

func init() {
	// Register your module here
	registerModule([]Module{
		&ping.ModulePing{},
		&auth.ModuleAuth{},
		&activity.ModuleActivity{},
		&category.ModuleCategory{},
		&user.ModuleUser{},
		&upload.ModuleUpload{},
	})
}
