package admin

import (
	"net/http"

	handlershared "github.com/campus-rent/internal/http/handlers/shared"
	"github.com/campus-rent/internal/http/response"

	"github.com/gin-gonic/gin"
)

type authzRolePayload struct {
	Role string `json:"role" binding:"required"`
}

type authzPolicyPayload struct {
	Role   string `json:"role" binding:"required"`
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

type authzSetUserRolesPayload struct {
	Roles []string `json:"roles"`
}

// GetAuthzMe 获取当前管理员的角色
func (h *Handler) GetAuthzMe(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	roles, err := h.AuthzService.GetUserRoles(adminID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "authz fetch failed", err)
		return
	}
	response.Success(c, gin.H{
		"user_id": adminID,
		"role":    c.GetString(handlershared.ContextKeyUserRole),
		"roles":   roles,
	})
}

// ListAuthzRoles 获取角色列表
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "authz fetch failed", err)
		return
	}
	response.Success(c, roles)
}

// CreateAuthzRole 创建角色
func (h *Handler) CreateAuthzRole(c *gin.Context) {
	var req authzRolePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	role, err := h.AuthzService.EnsureRole(req.Role)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	requestLog(c).Infow("admin_authz_role_created", "role", role)
	response.Created(c, gin.H{"role": role})
}

// GrantAuthzPolicy 为角色授予接口权限
func (h *Handler) GrantAuthzPolicy(c *gin.Context) {
	var req authzPolicyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	if err := h.AuthzService.GrantRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	requestLog(c).Infow("admin_authz_policy_granted",
		"role", req.Role,
		"object", req.Object,
		"action", req.Action,
	)
	response.Created(c, gin.H{"granted": true})
}

// SetUserRoles 覆盖用户的额外角色
func (h *Handler) SetUserRoles(c *gin.Context) {
	userID, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req authzSetUserRolesPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	user, err := h.UserRepo.GetByID(userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "user fetch failed", err)
		return
	}
	if user == nil {
		respondError(c, http.StatusNotFound, "user not found", nil)
		return
	}
	if err := h.AuthzService.SetUserRoles(userID, req.Roles); err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	roles, err := h.AuthzService.GetUserRoles(userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "authz fetch failed", err)
		return
	}
	requestLog(c).Infow("admin_authz_user_roles_updated",
		"user_id", userID,
		"roles", roles,
	)
	response.Success(c, gin.H{"user_id": userID, "roles": roles})
}
