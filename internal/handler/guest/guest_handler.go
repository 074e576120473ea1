// Package guest 提供客人档案相关的 HTTP Handler
package guest

import (
	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-reservation-backend/internal/common/handler"
	"github.com/dumeirei/hotel-reservation-backend/internal/common/response"
	guestService "github.com/dumeirei/hotel-reservation-backend/internal/service/guest"
)

// Handler 客人处理器
type Handler struct {
	guestService *guestService.GuestService
}

// NewHandler 创建客人处理器
func NewHandler(guestSvc *guestService.GuestService) *Handler {
	return &Handler{
		guestService: guestSvc,
	}
}

// CreateGuest 创建客人档案
// @Summary 创建客人档案
// @Tags 客人
// @Accept json
// @Produce json
// @Param request body guestService.CreateGuestRequest true "客人信息"
// @Success 201 {object} response.Response{data=guestService.GuestInfo}
// @Failure 422 {object} response.Response
// @Router /api/v1/guests [post]
func (h *Handler) CreateGuest(c *gin.Context) {
	var req guestService.CreateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, "参数错误")
		return
	}

	guest, err := h.guestService.CreateGuest(c.Request.Context(), &req)
	handler.MustSucceedCreatedWithMessage(c, err, "客人创建成功", guest)
}

// GetGuestList 获取客人列表
// @Summary 获取客人列表
// @Tags 客人
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param keyword query string false "姓名/证件号关键词"
// @Param document_type query string false "证件类型 DNI/PASSPORT"
// @Param nationality query string false "国籍"
// @Success 200 {object} response.Response{data=response.PageData}
// @Router /api/v1/guests [get]
func (h *Handler) GetGuestList(c *gin.Context) {
	var req guestService.GuestListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.UnprocessableEntity(c, "参数错误")
		return
	}

	guests, total, err := h.guestService.GetGuestList(c.Request.Context(), &req)
	handler.MustSucceedPage(c, err, guests, total, req.Page, req.PageSize)
}

// GetGuestByDocument 按证件号查询客人
// @Summary 按证件号查询客人
// @Tags 客人
// @Produce json
// @Param document_number query string true "证件号"
// @Success 200 {object} response.Response{data=guestService.GuestInfo}
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/guests/by-document [get]
func (h *Handler) GetGuestByDocument(c *gin.Context) {
	documentNumber := c.Query("document_number")
	if documentNumber == "" {
		response.UnprocessableEntity(c, "请提供证件号")
		return
	}

	guest, err := h.guestService.GetGuestByDocument(c.Request.Context(), documentNumber)
	handler.MustSucceed(c, err, guest)
}

// GetGuest 获取客人详情
// @Summary 获取客人详情
// @Tags 客人
// @Produce json
// @Param id path int true "客人ID"
// @Success 200 {object} response.Response{data=guestService.GuestInfo}
// @Failure 404 {object} response.Response
// @Router /api/v1/guests/{id} [get]
func (h *Handler) GetGuest(c *gin.Context) {
	guestID, ok := handler.ParseID(c, "客人")
	if !ok {
		return
	}

	guest, err := h.guestService.GetGuest(c.Request.Context(), guestID)
	handler.MustSucceed(c, err, guest)
}

// UpdateGuest 更新客人档案
// @Summary 更新客人档案
// @Tags 客人
// @Accept json
// @Produce json
// @Param id path int true "客人ID"
// @Param request body guestService.UpdateGuestRequest true "更新内容"
// @Success 200 {object} response.Response{data=guestService.GuestInfo}
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/guests/{id} [put]
func (h *Handler) UpdateGuest(c *gin.Context) {
	guestID, ok := handler.ParseID(c, "客人")
	if !ok {
		return
	}

	var req guestService.UpdateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, "参数错误")
		return
	}

	guest, err := h.guestService.UpdateGuest(c.Request.Context(), guestID, &req)
	handler.MustSucceedWithMessage(c, err, "客人更新成功", guest)
}

// DeleteGuest 删除客人档案
// @Summary 删除客人档案，存在关联预订时返回 422
// @Tags 客人
// @Produce json
// @Param id path int true "客人ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/guests/{id} [delete]
func (h *Handler) DeleteGuest(c *gin.Context) {
	guestID, ok := handler.ParseID(c, "客人")
	if !ok {
		return
	}

	err := h.guestService.DeleteGuest(c.Request.Context(), guestID)
	handler.MustSucceedWithMessage(c, err, "客人删除成功", nil)
}

// GetGuestStatistics 获取客人预订统计
// @Summary 获取客人各状态预订数量统计
// @Tags 客人
// @Produce json
// @Param id path int true "客人ID"
// @Success 200 {object} response.Response{data=guestService.GuestStatistics}
// @Failure 404 {object} response.Response
// @Router /api/v1/guests/{id}/statistics [get]
func (h *Handler) GetGuestStatistics(c *gin.Context) {
	guestID, ok := handler.ParseID(c, "客人")
	if !ok {
		return
	}

	stats, err := h.guestService.GetGuestStatistics(c.Request.Context(), guestID)
	handler.MustSucceed(c, err, stats)
}
