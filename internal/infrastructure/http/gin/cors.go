package gin

import (
	"time"

	"github.com/gin-contrib/cors"
	ginlib "github.com/gin-gonic/gin"
)

// CORS allows the given origins. "*" or an empty list allows any origin without credentials.
func CORS(allowed []string) ginlib.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if allowsAny(allowed) {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowed
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}

func allowsAny(allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, o := range allowed {
		if o == "*" {
			return true
		}
	}
	return false
}
