package main

import (
	"context"

	"github.com/mileusna/crontab"

	"promptlane.ai/prompt-gateway/app/domain/healthcheck"
	"promptlane.ai/prompt-gateway/app/domain/usage"
	"promptlane.ai/prompt-gateway/app/interfaces/http"
	"promptlane.ai/prompt-gateway/config/environment_variables"
)

type Application struct {
	HttpServer         *http.HttpServer
	UsageService       *usage.UsageService
	UsageReporter      *usage.Reporter
	HealthcheckService *healthcheck.HealthcheckCrontabService
	DataInitializer    *DataInitializer
}

func (application *Application) Start() {
	if err := application.HttpServer.Run(); err != nil {
		panic(err)
	}
}

func init() {
	environment_variables.EnvironmentVariables.LoadFromEnv()
}

func main() {
	application, err := CreateApplication()
	if err != nil {
		panic(err)
	}

	appContext := context.Background()
	if environment_variables.EnvironmentVariables.SEED_DEMO_DATA {
		if err := application.DataInitializer.Install(appContext); err != nil {
			panic(err)
		}
	}

	cron := crontab.New()
	application.HealthcheckService.Start(appContext, cron)
	application.UsageReporter.Start(appContext, cron)
	application.UsageService.Recorder().Start(appContext)

	application.Start()
}
