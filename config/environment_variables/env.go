package environment_variables

import (
	"fmt"
	"os"
	"reflect"
	"strings"
)

type EnvironmentVariable struct {
	API_PORT                string
	DB_POSTGRESQL_WRITE_DSN string
	DB_POSTGRESQL_READ1_DSN string
	DB_AUTO_MIGRATE         bool
	CACHE_TYPE              string
	CACHE_URL               string
	CACHE_PASSWORD          string
	CACHE_DB                string
	REDIS_URL               string
	REDIS_PASSWORD          string
	REDIS_DB                string
	APIKEY_SECRET           string
	SEED_DEMO_DATA          bool
	ALLOWED_CORS_HOSTS      []string
}

func (ev *EnvironmentVariable) LoadFromEnv() {
	v := reflect.ValueOf(ev).Elem()
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		envKey := field.Name
		envValue := os.Getenv(envKey)
		if envValue == "" {
			fmt.Printf("Missing SYSENV: %s\n", envKey)
			continue
		}
		switch v.Field(i).Kind() {
		case reflect.String:
			v.Field(i).SetString(envValue)
		case reflect.Bool:
			v.Field(i).SetBool(envValue == "true" || envValue == "1")
		case reflect.Slice:
			parts := strings.Split(envValue, ",")
			for j := range parts {
				parts[j] = strings.TrimSpace(parts[j])
			}
			v.Field(i).Set(reflect.ValueOf(parts))
		}
	}
}

// Singleton
var EnvironmentVariables = EnvironmentVariable{}
