package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"promptlane.ai/prompt-gateway/app/domain/healthcheck"
	"promptlane.ai/prompt-gateway/app/interfaces/http/middleware"
	v1 "promptlane.ai/prompt-gateway/app/interfaces/http/routes/v1"
	"promptlane.ai/prompt-gateway/app/utils/logger"
	"promptlane.ai/prompt-gateway/config/environment_variables"
)

type HttpServer struct {
	engine             *gin.Engine
	v1Route            *v1.V1Route
	healthcheckService *healthcheck.HealthcheckCrontabService
}

func NewHttpServer(v1Route *v1.V1Route, healthcheckService *healthcheck.HealthcheckCrontabService) *HttpServer {
	gin.SetMode(gin.ReleaseMode)
	server := HttpServer{
		engine:             gin.New(),
		v1Route:            v1Route,
		healthcheckService: healthcheckService,
	}
	server.engine.Use(
		gin.Recovery(),
		middleware.LoggerMiddleware(logger.GetLogger()),
		middleware.CORS(),
	)
	server.engine.GET("/health-check", server.healthCheck)
	return &server
}

func (httpServer *HttpServer) healthCheck(c *gin.Context) {
	dbHealthy, cacheHealthy := httpServer.healthcheckService.Status()
	status := http.StatusOK
	if !dbHealthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"database": dbHealthy,
		"cache":    cacheHealthy,
	})
}

func (httpServer *HttpServer) Run() error {
	port := environment_variables.EnvironmentVariables.API_PORT
	if port == "" {
		port = "8080"
	}
	httpServer.v1Route.RegisterRouter(httpServer.engine.Group("/"))
	if err := httpServer.engine.Run(fmt.Sprintf(":%s", port)); err != nil {
		return err
	}
	return nil
}
