package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type RecruiterHandler struct {
	recruiterUC domain.RecruiterUsecase
}

func NewRecruiterHandler(protected *gin.RouterGroup, recruiterUC domain.RecruiterUsecase) {
	handler := &RecruiterHandler{recruiterUC: recruiterUC}

	recruiter := protected.Group("/recruiter")
	{
		recruiter.POST("/post-recruiter-data", handler.PostRecruiterData)
		recruiter.GET("/get-recruiter-data", handler.GetRecruiterData)
		recruiter.PUT("/update-recruiter-data", handler.UpdateRecruiterData)
		recruiter.GET("/search-job-seekers/:text", handler.SearchJobSeekers)
	}
}

type RecruiterDataRequest struct {
	CompanyName    string `json:"companyName" binding:"required"`
	CompanySize    int    `json:"companySize"`
	CompanyAddress string `json:"companyAddress"`
	Industry       string `json:"industry"`
}

type RecruiterDataPatchRequest struct {
	CompanyName    *string `json:"companyName"`
	CompanySize    *int    `json:"companySize"`
	CompanyAddress *string `json:"companyAddress"`
	Industry       *string `json:"industry"`
}

func (h *RecruiterHandler) PostRecruiterData(c *gin.Context) {
	var req RecruiterDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	data := &domain.RecruiterData{
		CompanyName:    req.CompanyName,
		CompanySize:    req.CompanySize,
		CompanyAddress: req.CompanyAddress,
		Industry:       req.Industry,
	}
	if err := h.recruiterUC.PostRecruiterData(c.Request.Context(), currentUserID(c), data); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Recruiter data added successfully", data)
}

func (h *RecruiterHandler) GetRecruiterData(c *gin.Context) {
	data, err := h.recruiterUC.GetRecruiterData(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Recruiter data retrieved successfully", data)
}

func (h *RecruiterHandler) UpdateRecruiterData(c *gin.Context) {
	var req RecruiterDataPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	patch := &domain.RecruiterDataPatch{
		CompanyName:    req.CompanyName,
		CompanySize:    req.CompanySize,
		CompanyAddress: req.CompanyAddress,
		Industry:       req.Industry,
	}
	data, err := h.recruiterUC.UpdateRecruiterData(c.Request.Context(), currentUserID(c), patch)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Recruiter data updated successfully", data)
}

func (h *RecruiterHandler) SearchJobSeekers(c *gin.Context) {
	profiles, err := h.recruiterUC.SearchJobSeekers(c.Request.Context(), currentUserID(c), c.Param("text"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job seekers retrieved successfully", profiles)
}
