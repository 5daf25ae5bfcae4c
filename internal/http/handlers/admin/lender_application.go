package admin

import (
	"strings"

	handlershared "github.com/campus-rent/internal/http/handlers/shared"
	"github.com/campus-rent/internal/http/response"

	"github.com/gin-gonic/gin"
)

type lenderReviewPayload struct {
	Note string `json:"note"`
}

// ListLenderApplications 出借人申请列表
func (h *Handler) ListLenderApplications(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	status := strings.TrimSpace(c.Query("status"))

	apps, total, err := h.LenderApplicationService.List(status, page, pageSize)
	if err != nil {
		respondLenderReviewError(c, err)
		return
	}
	response.SuccessWithPage(c, apps, response.BuildPagination(page, pageSize, total))
}

// ApproveLenderApplication 通过出借人申请
func (h *Handler) ApproveLenderApplication(c *gin.Context) {
	h.reviewLenderApplication(c, true)
}

// RejectLenderApplication 驳回出借人申请
func (h *Handler) RejectLenderApplication(c *gin.Context) {
	h.reviewLenderApplication(c, false)
}

func (h *Handler) reviewLenderApplication(c *gin.Context, approve bool) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req lenderReviewPayload
	// 备注可选，允许空请求体
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			handlershared.RespondBindError(c, err)
			return
		}
	}

	review := h.LenderApplicationService.Reject
	if approve {
		review = h.LenderApplicationService.Approve
	}
	app, err := review(adminID, id, strings.TrimSpace(req.Note))
	if err != nil {
		respondLenderReviewError(c, err)
		return
	}
	requestLog(c).Infow("admin_lender_application_reviewed",
		"admin_id", adminID,
		"application_id", app.ID,
		"status", app.Status,
	)
	response.Success(c, app)
}
