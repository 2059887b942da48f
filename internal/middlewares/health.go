package middlewares

import (
	"net/http"

	"github.com/syrilster/employee-directory/internal/util"
)

// RuntimeHealthCheck is a sample healt check func
func RuntimeHealthCheck() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		util.WithBodyAndStatus("All OK", http.StatusOK, w)
	}
}
