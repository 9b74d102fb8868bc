package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"

	"promptlane.ai/prompt-gateway/app/utils/logger"
	"promptlane.ai/prompt-gateway/config/environment_variables"
)

var SchemaRegistry []interface{}

func RegisterSchemaForAutoMigrate(models ...interface{}) {
	SchemaRegistry = append(SchemaRegistry, models...)
}

func NewDB() (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(environment_variables.EnvironmentVariables.DB_POSTGRESQL_WRITE_DSN), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	})
	if err != nil {
		logger.GetLogger().
			WithField("error_code", "8f3f2a6e-4a6d-4f64-9c5a-0e62a7b1d9ce").
			Errorf("unable to connect to database: %v", err)
		return nil, err
	}

	if readDSN := environment_variables.EnvironmentVariables.DB_POSTGRESQL_READ1_DSN; readDSN != "" {
		err = db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.Open(readDSN)},
			Policy:   dbresolver.RandomPolicy{},
		}))
		if err != nil {
			logger.GetLogger().
				WithField("error_code", "c1d4de5a-75cf-4cbb-9f1c-3b7ac17b52c4").
				Errorf("unable to register read replica: %v", err)
			return nil, err
		}
	}

	if environment_variables.EnvironmentVariables.DB_AUTO_MIGRATE {
		for _, model := range SchemaRegistry {
			if err := db.AutoMigrate(model); err != nil {
				logger.GetLogger().
					WithField("error_code", "0b2f6f84-6d4e-4aee-b7ad-52fb1d24c6f1").
					Errorf("failed to auto migrate schema: %T, error: %v", model, err)
				return nil, err
			}
		}
	}

	return db, nil
}
