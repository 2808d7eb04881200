package v1_test

import (
	"testing"

	"go-jobboard-backend/config"
	v1 "go-jobboard-backend/internal/delivery/http/v1"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRouterRegistersRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := v1.NewRouter(v1.RouterDeps{Config: &config.Config{}})

	registered := make(map[string]bool)
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"POST /v1/auth/signup",
		"GET /v1/auth/verify/:token",
		"POST /v1/auth/login",
		"POST /v1/auth/forgot-password",
		"POST /v1/auth/reset-password/:token",
		"PUT /v1/user/set-resume-url",
		"GET /v1/user/get-resume-url",
		"PUT /v1/user/replace-profile-picture",
		"PUT /v1/user/edit-job-preferences",
		"GET /v1/recruiter/search-job-seekers/:text",
		"POST /v1/jobs/apply-for-job/:id",
		"GET /v1/jobs/get-applicants/:id",
	} {
		assert.True(t, registered[want], "route %q not registered", want)
	}
}
