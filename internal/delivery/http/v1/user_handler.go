package v1

import (
	"net/http"
	"time"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	profileUC domain.ProfileUsecase
}

func NewUserHandler(protected *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &UserHandler{profileUC: profileUC}

	user := protected.Group("/user")
	{
		user.POST("/add-personal-data", handler.AddPersonalData)
		user.GET("/get-personal-data", handler.GetPersonalData)
		user.PUT("/edit-personal-data", handler.EditPersonalData)

		user.POST("/post-skills", handler.PostSkills)
		user.GET("/get-skills", handler.GetSkills)
		user.PUT("/edit-skills", handler.EditSkills)

		user.POST("/add-education", handler.AddEducation)
		user.GET("/get-educations", handler.GetEducations)
		user.GET("/get-education/:id", handler.GetEducation)
		user.PUT("/edit-education/:id", handler.EditEducation)
		user.DELETE("/delete-education/:id", handler.DeleteEducation)

		user.POST("/add-employment", handler.AddEmployment)
		user.GET("/get-employments", handler.GetEmployments)
		user.GET("/get-employment/:id", handler.GetEmployment)
		user.PUT("/edit-employment/:id", handler.EditEmployment)
		user.DELETE("/delete-employment/:id", handler.DeleteEmployment)

		user.POST("/set-job-preferences", handler.SetJobPreferences)
		// Replace semantics, same as set.
		user.PUT("/edit-job-preferences", handler.SetJobPreferences)
		user.POST("/push-job-preference", handler.PushJobPreference)
		user.GET("/get-job-preferences", handler.GetJobPreferences)

		user.PUT("/replace-profile-picture", handler.ReplaceProfilePicture)
		user.GET("/get-profile-picture-url", handler.GetProfilePictureURL)
		user.PUT("/set-resume-url", handler.SetResume)
		user.GET("/get-resume-url", handler.GetResumeURL)

		user.GET("/check-recruiter-data-filled", handler.CheckRecruiterDataFilled)
		user.GET("/check-jobseeker-data-filled", handler.CheckJobSeekerDataFilled)
	}
}

type PersonalDataRequest struct {
	FullName    string     `json:"fullName" binding:"required"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	Address     string     `json:"address"`
}

type PersonalDataPatchRequest struct {
	FullName    *string    `json:"fullName"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	Address     *string    `json:"address"`
}

type SkillsRequest struct {
	// Skills is a delimited list, e.g. "Go; MongoDB; Docker".
	Skills string `json:"skills" binding:"required"`
}

type EducationRequest struct {
	School         string    `json:"school" binding:"required"`
	Degree         string    `json:"degree" binding:"required"`
	FieldOfStudy   string    `json:"fieldOfStudy"`
	GraduationDate time.Time `json:"graduationDate" binding:"required"`
}

type EducationPatchRequest struct {
	School         *string    `json:"school"`
	Degree         *string    `json:"degree"`
	FieldOfStudy   *string    `json:"fieldOfStudy"`
	GraduationDate *time.Time `json:"graduationDate"`
}

type EmploymentRequest struct {
	Company   string     `json:"company" binding:"required"`
	Position  string     `json:"position" binding:"required"`
	StartDate time.Time  `json:"startDate" binding:"required"`
	EndDate   *time.Time `json:"endDate"`
}

type EmploymentPatchRequest struct {
	Company      *string    `json:"company"`
	Position     *string    `json:"position"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	ClearEndDate bool       `json:"clearEndDate"`
}

type JobPreferencesRequest struct {
	// Preferences is a delimited list of job titles.
	Preferences string `json:"preferences" binding:"required"`
}

type JobPreferenceRequest struct {
	Title string `json:"title" binding:"required"`
}

type URLRequest struct {
	URL string `json:"url" binding:"required,url"`
}

func currentUserID(c *gin.Context) string {
	return c.GetString(string(domain.KeyUserID))
}

func (h *UserHandler) AddPersonalData(c *gin.Context) {
	var req PersonalDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	data := &domain.PersonalData{
		FullName:    req.FullName,
		DateOfBirth: req.DateOfBirth,
		Address:     req.Address,
	}
	if err := h.profileUC.AddPersonalData(c.Request.Context(), currentUserID(c), data); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Personal data added successfully", data)
}

func (h *UserHandler) GetPersonalData(c *gin.Context) {
	data, err := h.profileUC.GetPersonalData(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Personal data retrieved successfully", data)
}

func (h *UserHandler) EditPersonalData(c *gin.Context) {
	var req PersonalDataPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	patch := &domain.PersonalDataPatch{
		FullName:    req.FullName,
		DateOfBirth: req.DateOfBirth,
		Address:     req.Address,
	}
	data, err := h.profileUC.EditPersonalData(c.Request.Context(), currentUserID(c), patch)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Personal data updated successfully", data)
}

func (h *UserHandler) PostSkills(c *gin.Context) {
	var req SkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	set, err := h.profileUC.PostSkills(c.Request.Context(), currentUserID(c), req.Skills)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Skills added successfully", set)
}

func (h *UserHandler) GetSkills(c *gin.Context) {
	set, err := h.profileUC.GetSkills(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skills retrieved successfully", set)
}

func (h *UserHandler) EditSkills(c *gin.Context) {
	var req SkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	set, err := h.profileUC.EditSkills(c.Request.Context(), currentUserID(c), req.Skills)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skills updated successfully", set)
}

func (h *UserHandler) AddEducation(c *gin.Context) {
	var req EducationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	edu := &domain.Education{
		School:         req.School,
		Degree:         req.Degree,
		FieldOfStudy:   req.FieldOfStudy,
		GraduationDate: req.GraduationDate,
	}
	if err := h.profileUC.AddEducation(c.Request.Context(), currentUserID(c), edu); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Education added successfully", edu)
}

func (h *UserHandler) GetEducations(c *gin.Context) {
	educations, err := h.profileUC.GetEducations(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Educations retrieved successfully", educations)
}

func (h *UserHandler) GetEducation(c *gin.Context) {
	edu, err := h.profileUC.GetEducation(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Education retrieved successfully", edu)
}

func (h *UserHandler) EditEducation(c *gin.Context) {
	var req EducationPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	patch := &domain.EducationPatch{
		School:         req.School,
		Degree:         req.Degree,
		FieldOfStudy:   req.FieldOfStudy,
		GraduationDate: req.GraduationDate,
	}
	edu, err := h.profileUC.EditEducation(c.Request.Context(), currentUserID(c), c.Param("id"), patch)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Education updated successfully", edu)
}

func (h *UserHandler) DeleteEducation(c *gin.Context) {
	if err := h.profileUC.DeleteEducation(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Education deleted successfully", nil)
}

func (h *UserHandler) AddEmployment(c *gin.Context) {
	var req EmploymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	emp := &domain.Employment{
		Company:   req.Company,
		Position:  req.Position,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if err := h.profileUC.AddEmployment(c.Request.Context(), currentUserID(c), emp); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Employment added successfully", emp)
}

func (h *UserHandler) GetEmployments(c *gin.Context) {
	employments, err := h.profileUC.GetEmployments(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Employments retrieved successfully", employments)
}

func (h *UserHandler) GetEmployment(c *gin.Context) {
	emp, err := h.profileUC.GetEmployment(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Employment retrieved successfully", emp)
}

func (h *UserHandler) EditEmployment(c *gin.Context) {
	var req EmploymentPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	patch := &domain.EmploymentPatch{
		Company:      req.Company,
		Position:     req.Position,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		ClearEndDate: req.ClearEndDate,
	}
	emp, err := h.profileUC.EditEmployment(c.Request.Context(), currentUserID(c), c.Param("id"), patch)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Employment updated successfully", emp)
}

func (h *UserHandler) DeleteEmployment(c *gin.Context) {
	if err := h.profileUC.DeleteEmployment(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Employment deleted successfully", nil)
}

func (h *UserHandler) SetJobPreferences(c *gin.Context) {
	var req JobPreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	preferences, err := h.profileUC.SetJobPreferences(c.Request.Context(), currentUserID(c), req.Preferences)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job preferences saved successfully", preferences)
}

func (h *UserHandler) PushJobPreference(c *gin.Context) {
	var req JobPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	preferences, err := h.profileUC.PushJobPreference(c.Request.Context(), currentUserID(c), req.Title)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job preference added successfully", preferences)
}

func (h *UserHandler) GetJobPreferences(c *gin.Context) {
	preferences, err := h.profileUC.GetJobPreferences(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job preferences retrieved successfully", preferences)
}

func (h *UserHandler) ReplaceProfilePicture(c *gin.Context) {
	var req URLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.profileUC.SetProfilePictureURL(c.Request.Context(), currentUserID(c), req.URL); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile picture updated successfully", gin.H{"profilePictureUrl": req.URL})
}

func (h *UserHandler) GetProfilePictureURL(c *gin.Context) {
	url, err := h.profileUC.GetProfilePictureURL(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile picture URL retrieved successfully", gin.H{"profilePictureUrl": url})
}

func (h *UserHandler) SetResume(c *gin.Context) {
	var req URLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.profileUC.SetResumeURL(c.Request.Context(), currentUserID(c), req.URL); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume updated successfully", gin.H{"resumeUrl": req.URL})
}

func (h *UserHandler) GetResumeURL(c *gin.Context) {
	url, err := h.profileUC.GetResumeURL(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume URL retrieved successfully", gin.H{"resumeUrl": url})
}

func (h *UserHandler) CheckRecruiterDataFilled(c *gin.Context) {
	hasRecruiterData, hasPersonalData, err := h.profileUC.CheckRecruiterDataFilled(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Recruiter data check completed", gin.H{
		"hasRecruiterData": hasRecruiterData,
		"hasPersonalData":  hasPersonalData,
	})
}

func (h *UserHandler) CheckJobSeekerDataFilled(c *gin.Context) {
	hasPersonalData, hasEducation, err := h.profileUC.CheckJobSeekerDataFilled(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job seeker data check completed", gin.H{
		"hasPersonalData": hasPersonalData,
		"hasEducation":    hasEducation,
	})
}
