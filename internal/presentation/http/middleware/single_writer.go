package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

// SingleWriter serializes every mutating request so the ledger, the current
// order and the sales history only ever see one writer. Reads run freely.
func SingleWriter() gin.HandlerFunc {
	var mu sync.Mutex
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}
		mu.Lock()
		defer mu.Unlock()
		c.Next()
	}
}
