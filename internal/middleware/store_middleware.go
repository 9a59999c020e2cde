package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/farellandr/dataswift/internal/store"
)

func StoreMiddleware(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("store", st)
		c.Next()
	}
}
