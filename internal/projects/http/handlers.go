package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/zkCaleb-dev/Sirius-Funding-Repository/internal/auth"
	"github.com/zkCaleb-dev/Sirius-Funding-Repository/internal/projects/domain"
	"github.com/zkCaleb-dev/Sirius-Funding-Repository/internal/projects/service"
)

// Handler handles HTTP requests for campaigns and their two workflows.
type Handler struct {
	svc *service.ProjectService
}

func New(svc *service.ProjectService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) list(c *gin.Context) {
	projects, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "failed to load projects, please try again later",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "projects": projects})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "failed to load project, please try again later",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "project": p})
}

func (h *Handler) create(c *gin.Context) {
	var req createProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	req.ProjectID = strings.TrimSpace(req.ProjectID)
	req.Creator = strings.TrimSpace(req.Creator)
	req.Description = strings.TrimSpace(req.Description)

	if req.ProjectID == "" || req.Creator == "" || req.Description == "" || req.Deadline.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "all fields are required"})
		return
	}
	if req.Goal <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "goal must be a positive number"})
		return
	}
	if req.ImageBase64 != "" && imageSizeBytes(req.ImageBase64) > maxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "image is too large (max 5MB)"})
		return
	}

	p := &domain.Project{
		ProjectID:   req.ProjectID,
		Creator:     req.Creator,
		Goal:        req.Goal,
		Deadline:    req.Deadline.Time,
		Description: req.Description,
		ImageBase64: req.ImageBase64,
	}

	id, err := h.svc.CreateProject(c.Request.Context(), p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "failed to create project, please try again later",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   "project created successfully",
		"projectId": id,
	})
}

func (h *Handler) donate(c *gin.Context) {
	wallet := auth.CallerWallet(c)
	if wallet == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "wallet address not provided"})
		return
	}

	var req donateReq
	if err := c.ShouldBindJSON(&req); err != nil || req.ProjectID == "" || req.Amount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "missing required fields"})
		return
	}

	total, err := h.svc.Donate(c.Request.Context(), req.ProjectID, wallet, req.Amount)
	if err != nil {
		status, msg := donationErrStatus(err)
		c.JSON(status, gin.H{"success": false, "error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "donationsXLM": total})
}

func (h *Handler) claim(c *gin.Context) {
	wallet := auth.CallerWallet(c)
	if wallet == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "wallet not connected"})
		return
	}

	var req claimReq
	if err := c.ShouldBindJSON(&req); err != nil || req.ProjectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "project ID not provided"})
		return
	}

	p, err := h.svc.Claim(c.Request.Context(), req.ProjectID, wallet)
	if err != nil {
		status, msg := claimErrStatus(err)
		c.JSON(status, gin.H{"message": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "funds claimed successfully",
		"amount":  p.DonationsXLM,
	})
}

func (h *Handler) donations(c *gin.Context) {
	items, err := h.svc.Donations(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrHistoryDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": "donation history is not enabled"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "failed to load donations, please try again later",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "donations": items})
}

func donationErrStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrProjectNotFound):
		return http.StatusNotFound, "project not found"
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, domain.ErrInvalidAmount.Error()
	default:
		return http.StatusInternalServerError, "failed to process the donation, please try again later"
	}
}

func claimErrStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrProjectNotFound):
		return http.StatusNotFound, "project not found"
	case errors.Is(err, domain.ErrNotCreator):
		return http.StatusForbidden, "not authorized to claim the funds"
	case errors.Is(err, domain.ErrGoalNotReached):
		return http.StatusBadRequest, "the project has not reached 80% of its goal"
	case errors.Is(err, domain.ErrAlreadyClaimed):
		return http.StatusBadRequest, "the funds have already been claimed"
	default:
		return http.StatusInternalServerError, "failed to claim the funds, please try again later"
	}
}
