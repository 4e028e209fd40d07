package bootstrap

import "github.com/gin-gonic/gin"

// SetGinMode puts Gin in release mode outside local development so
// production logs are not flooded with debug route dumps.
func SetGinMode(env string) {
	switch env {
	case "production", "staging":
		gin.SetMode(gin.ReleaseMode)
	}
}
