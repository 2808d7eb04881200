package v1

import (
	"net/http"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// registerValidations hooks custom rules into gin's binding validator.
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			role := domain.Role(fl.Field().String())
			return role == domain.RoleJobSeeker || role == domain.RoleRecruiter
		})
	}
}

type RouterDeps struct {
	AuthUC      domain.AuthUsecase
	ProfileUC   domain.ProfileUsecase
	RecruiterUC domain.RecruiterUsecase
	JobUC       domain.JobUsecase
	Config      *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	registerValidations()

	r := gin.New()

	// CORS must run before anything that can short-circuit the request.
	r.Use(middleware.CORSMiddleware(deps.Config.AllowedOrigin))
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.SecurityHeadersMiddleware())

	v1 := r.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	NewAuthHandler(v1, deps.AuthUC)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Config, deps.AuthUC))
	{
		NewUserHandler(protected, deps.ProfileUC)
		NewRecruiterHandler(protected, deps.RecruiterUC)
		NewJobHandler(protected, deps.JobUC)
	}

	return r
}
