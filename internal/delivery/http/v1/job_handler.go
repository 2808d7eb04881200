package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	jobs := protected.Group("/jobs")
	{
		jobs.POST("/post-job", handler.PostJob)
		jobs.GET("/get-all-jobs", handler.GetAllJobs)
		jobs.GET("/get-job/:id", handler.GetJob)
		jobs.GET("/get-jobs-by-user/:userId", handler.GetJobsByUser)
		jobs.PUT("/edit-job/:id", handler.EditJob)
		jobs.DELETE("/delete-job/:id", handler.DeleteJob)
		jobs.POST("/apply-for-job/:id", handler.ApplyForJob)
		jobs.GET("/get-applicants/:id", handler.GetApplicants)
		jobs.GET("/search-jobs/:text", handler.SearchJobs)
	}
}

type PostJobRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Company     string `json:"company" binding:"required"`
	Location    string `json:"location" binding:"required"`
	// Requirements and Skills are delimited lists.
	Requirements string `json:"requirements"`
	Skills       string `json:"skills"`
}

type EditJobRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Company      *string `json:"company"`
	Location     *string `json:"location"`
	Requirements *string `json:"requirements"`
	Skills       *string `json:"skills"`
}

func (h *JobHandler) PostJob(c *gin.Context) {
	var req PostJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	job := &domain.Job{
		Title:       req.Title,
		Description: req.Description,
		Company:     req.Company,
		Location:    req.Location,
	}
	created, err := h.jobUC.PostJob(c.Request.Context(), currentUserID(c), job, req.Requirements, req.Skills)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job posted successfully", created)
}

func (h *JobHandler) GetAllJobs(c *gin.Context) {
	jobs, err := h.jobUC.ListJobs(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs retrieved successfully", jobs)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.jobUC.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job retrieved successfully", job)
}

func (h *JobHandler) GetJobsByUser(c *gin.Context) {
	jobs, err := h.jobUC.ListJobsByRecruiter(c.Request.Context(), c.Param("userId"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs retrieved successfully", jobs)
}

func (h *JobHandler) EditJob(c *gin.Context) {
	var req EditJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	patch := &domain.JobPatch{
		Title:        req.Title,
		Description:  req.Description,
		Company:      req.Company,
		Location:     req.Location,
		Requirements: req.Requirements,
		Skills:       req.Skills,
	}
	job, err := h.jobUC.EditJob(c.Request.Context(), currentUserID(c), c.Param("id"), patch)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job updated successfully", job)
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	if err := h.jobUC.DeleteJob(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job deleted successfully", nil)
}

func (h *JobHandler) ApplyForJob(c *gin.Context) {
	if err := h.jobUC.ApplyForJob(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application submitted successfully", nil)
}

func (h *JobHandler) GetApplicants(c *gin.Context) {
	applicants, err := h.jobUC.ListApplicants(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applicants retrieved successfully", applicants)
}

func (h *JobHandler) SearchJobs(c *gin.Context) {
	jobs, err := h.jobUC.SearchJobs(c.Request.Context(), c.Param("text"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs retrieved successfully", jobs)
}
