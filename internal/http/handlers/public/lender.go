package public

import (
	handlershared "github.com/campus-rent/internal/http/handlers/shared"
	"github.com/campus-rent/internal/http/response"
	"github.com/campus-rent/internal/service"

	"github.com/gin-gonic/gin"
)

// LenderApplyRequest 出借人申请请求
type LenderApplyRequest struct {
	StudentIDNumber string `json:"student_id_number" binding:"required"`
	IDCardURL       string `json:"id_card_url"`
	Reason          string `json:"reason"`
}

// ApplyLender 提交出借人申请
func (h *Handler) ApplyLender(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req LenderApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	app, err := h.LenderApplicationService.Apply(uid, service.LenderApplyInput{
		StudentIDNumber: req.StudentIDNumber,
		IDCardURL:       req.IDCardURL,
		Reason:          req.Reason,
	})
	if err != nil {
		respondLenderError(c, err)
		return
	}
	response.Created(c, app)
}

// GetMyLenderApplication 查看自己的申请
func (h *Handler) GetMyLenderApplication(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	app, err := h.LenderApplicationService.GetMine(uid)
	if err != nil {
		respondLenderError(c, err)
		return
	}
	response.Success(c, app)
}
