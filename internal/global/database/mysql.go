package database

import (
	"campus-discover/config"
	"campus-discover/internal/model"
	"campus-discover/tools"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var DB *gorm.DB

var autoMigrateModels = []any{
	&model.User{},
	&model.Category{},
	&model.Activity{},
	&model.Comment{},
	&model.Like{},
}

func Init() {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.Get().Mysql.Username,
		config.Get().Mysql.Password,
		config.Get().Mysql.Host,
		config.Get().Mysql.Port,
		config.Get().Mysql.DBName,
	)

	db, err := gorm.Open(mysql.Open(dsn), NewGormConfig())
	tools.PanicOnErr(err)
	DB = db

	tools.PanicOnErr(DB.AutoMigrate(autoMigrateModels...))
}

// NewGormConfig is shared with the test fixture so the sqlite database
// under test carries the same naming and logging behavior as MySQL.
func NewGormConfig() *gorm.Config {
	gormConfig := &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
	}

	switch config.Get().Mode {
	case config.ModeDebug:
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	case config.ModeRelease:
		gormConfig.Logger = logger.Discard
	}
	return gormConfig
}

// Migrate applies the schema to an arbitrary gorm DB (used by tests).
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(autoMigrateModels...)
}
