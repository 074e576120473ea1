// Package reservation 提供预订相关的 HTTP Handler
package reservation

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-reservation-backend/internal/common/handler"
	"github.com/dumeirei/hotel-reservation-backend/internal/common/qrcode"
	"github.com/dumeirei/hotel-reservation-backend/internal/common/response"
	"github.com/dumeirei/hotel-reservation-backend/internal/models"
	reservationService "github.com/dumeirei/hotel-reservation-backend/internal/service/reservation"
)

// Handler 预订处理器
type Handler struct {
	reservationService *reservationService.ReservationService
	qrGenerator        *qrcode.Generator
}

// NewHandler 创建预订处理器
func NewHandler(reservationSvc *reservationService.ReservationService) *Handler {
	return &Handler{
		reservationService: reservationSvc,
		qrGenerator:        qrcode.NewGenerator(qrcode.WithSize(300), qrcode.WithRecoveryLevel(qrcode.High)),
	}
}

// CreateReservation 创建预订
// @Summary 创建预订，占用检查与写入在同一事务内完成
// @Tags 预订
// @Accept json
// @Produce json
// @Param request body reservationService.CreateReservationRequest true "预订信息"
// @Success 201 {object} response.Response{data=reservationService.ReservationInfo}
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/reservations [post]
func (h *Handler) CreateReservation(c *gin.Context) {
	var req reservationService.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, "参数错误")
		return
	}

	reservation, err := h.reservationService.CreateReservation(c.Request.Context(), &req)
	handler.MustSucceedCreatedWithMessage(c, err, "预订创建成功", reservation)
}

// GetReservationList 获取预订列表
// @Summary 获取预订列表
// @Tags 预订
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param hotel_id query int false "酒店ID"
// @Param room_id query int false "房间ID"
// @Param guest_id query int false "客人ID"
// @Param status query string false "状态 PENDING/CONFIRMED/CANCELLED"
// @Param reservation_code query string false "预订编号"
// @Param start_date query string false "入住开始日期 YYYY-MM-DD"
// @Param end_date query string false "入住结束日期 YYYY-MM-DD"
// @Success 200 {object} response.Response{data=response.PageData}
// @Router /api/v1/reservations [get]
func (h *Handler) GetReservationList(c *gin.Context) {
	var req reservationService.ReservationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.UnprocessableEntity(c, "参数错误")
		return
	}

	reservations, total, err := h.reservationService.GetReservationList(c.Request.Context(), &req)
	handler.MustSucceedPage(c, err, reservations, total, req.Page, req.PageSize)
}

// CheckAvailability 检查房间在日期范围内是否存在预订冲突
// @Summary 检查房间可用性
// @Tags 预订
// @Produce json
// @Param room_id query int true "房间ID"
// @Param check_in_date query string true "入住日期 YYYY-MM-DD"
// @Param check_out_date query string true "退房日期 YYYY-MM-DD"
// @Param exclude_reservation_id query int false "排除的预订ID，编辑预订时传入自身ID"
// @Success 200 {object} response.Response{data=reservationService.AvailabilityInfo}
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/reservations/availability [get]
func (h *Handler) CheckAvailability(c *gin.Context) {
	roomID, ok := handler.ParseRequiredQueryID(c, "room_id", "房间")
	if !ok {
		return
	}

	var excludeID *int64
	if raw := c.Query("exclude_reservation_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.UnprocessableEntity(c, "无效的排除预订ID")
			return
		}
		excludeID = &id
	}

	availability, err := h.reservationService.CheckAvailability(
		c.Request.Context(), roomID, c.Query("check_in_date"), c.Query("check_out_date"), excludeID)
	handler.MustSucceed(c, err, availability)
}

// GetStatistics 获取预订统计
// @Summary 获取预订状态分布、收入与平均间夜统计
// @Tags 预订
// @Produce json
// @Success 200 {object} response.Response{data=reservationService.Statistics}
// @Router /api/v1/reservations/statistics [get]
func (h *Handler) GetStatistics(c *gin.Context) {
	stats, err := h.reservationService.GetStatistics(c.Request.Context())
	handler.MustSucceed(c, err, stats)
}

// GetReservationByCode 按预订编号查询
// @Summary 按预订编号查询预订
// @Tags 预订
// @Produce json
// @Param code path string true "预订编号"
// @Success 200 {object} response.Response{data=reservationService.ReservationInfo}
// @Failure 404 {object} response.Response
// @Router /api/v1/reservations/code/{code} [get]
func (h *Handler) GetReservationByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		response.NotFound(c, "预订不存在")
		return
	}

	reservation, err := h.reservationService.GetReservationByCode(c.Request.Context(), code)
	handler.MustSucceed(c, err, reservation)
}

// GetReservation 获取预订详情
// @Summary 获取预订详情（含入住客人列表）
// @Tags 预订
// @Produce json
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response{data=reservationService.ReservationInfo}
// @Failure 404 {object} response.Response
// @Router /api/v1/reservations/{id} [get]
func (h *Handler) GetReservation(c *gin.Context) {
	reservationID, ok := handler.ParseID(c, "预订")
	if !ok {
		return
	}

	reservation, err := h.reservationService.GetReservation(c.Request.Context(), reservationID)
	handler.MustSucceed(c, err, reservation)
}

// UpdateReservation 修改预订
// @Summary 修改预订内容，可在同一请求中流转状态
// @Tags 预订
// @Accept json
// @Produce json
// @Param id path int true "预订ID"
// @Param request body reservationService.UpdateReservationRequest true "更新内容"
// @Success 200 {object} response.Response{data=reservationService.ReservationInfo}
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/reservations/{id} [put]
func (h *Handler) UpdateReservation(c *gin.Context) {
	reservationID, ok := handler.ParseID(c, "预订")
	if !ok {
		return
	}

	var req reservationService.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, "参数错误")
		return
	}

	reservation, err := h.reservationService.UpdateReservation(c.Request.Context(), reservationID, &req)
	handler.MustSucceedWithMessage(c, err, "预订更新成功", reservation)
}

// statusRequest 状态流转请求体
type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus 更新预订状态
// @Summary 更新预订状态（确认/取消）
// @Tags 预订
// @Accept json
// @Produce json
// @Param id path int true "预订ID"
// @Param request body statusRequest true "目标状态"
// @Success 200 {object} response.Response{data=reservationService.ReservationInfo}
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/reservations/{id}/status [patch]
func (h *Handler) UpdateStatus(c *gin.Context) {
	reservationID, ok := handler.ParseID(c, "预订")
	if !ok {
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, "参数错误")
		return
	}

	current, err := h.reservationService.GetReservation(c.Request.Context(), reservationID)
	if handler.HandleError(c, err) {
		return
	}

	reservation, err := h.reservationService.UpdateStatus(c.Request.Context(), reservationID, req.Status)
	msg := "预订状态更新成功"
	if current.Status == models.ReservationStatusConfirmed && req.Status == models.ReservationStatusCancelled {
		msg = cancelConfirmedWarning
	}
	handler.MustSucceedWithMessage(c, err, msg, reservation)
}

// ConfirmReservation 确认预订
// @Summary 确认预订并发送短信通知
// @Tags 预订
// @Produce json
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response{data=reservationService.ReservationInfo}
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/reservations/{id}/confirm [post]
func (h *Handler) ConfirmReservation(c *gin.Context) {
	reservationID, ok := handler.ParseID(c, "预订")
	if !ok {
		return
	}

	reservation, err := h.reservationService.ConfirmReservation(c.Request.Context(), reservationID)
	handler.MustSucceedWithMessage(c, err, "预订确认成功", reservation)
}

// cancelConfirmedWarning 取消已确认预订时的提示语
const cancelConfirmedWarning = "预订取消成功，注意：该预订此前已确认，请及时通知客人"

// CancelReservation 取消预订
// @Summary 取消预订并释放占用日期
// @Tags 预订
// @Produce json
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response{data=reservationService.ReservationInfo}
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/reservations/{id}/cancel [post]
func (h *Handler) CancelReservation(c *gin.Context) {
	reservationID, ok := handler.ParseID(c, "预订")
	if !ok {
		return
	}

	current, err := h.reservationService.GetReservation(c.Request.Context(), reservationID)
	if handler.HandleError(c, err) {
		return
	}

	reservation, err := h.reservationService.CancelReservation(c.Request.Context(), reservationID)
	msg := "预订取消成功"
	if current.Status == models.ReservationStatusConfirmed {
		msg = cancelConfirmedWarning
	}
	handler.MustSucceedWithMessage(c, err, msg, reservation)
}

// GetReservationQRCode 获取预订凭证二维码
// @Summary 获取已确认预订的入住凭证二维码
// @Tags 预订
// @Produce png
// @Param id path int true "预订ID"
// @Success 200 {file} png
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/reservations/{id}/qrcode [get]
func (h *Handler) GetReservationQRCode(c *gin.Context) {
	reservationID, ok := handler.ParseID(c, "预订")
	if !ok {
		return
	}

	reservation, err := h.reservationService.GetReservation(c.Request.Context(), reservationID)
	if handler.HandleError(c, err) {
		return
	}
	if reservation.Status != models.ReservationStatusConfirmed {
		response.UnprocessableEntity(c, "仅已确认的预订支持生成凭证二维码")
		return
	}

	png, err := h.qrGenerator.GeneratePNG(reservation.ReservationCode)
	if handler.HandleError(c, err) {
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// DeleteReservation 删除预订
// @Summary 删除预订，已确认的预订需先取消
// @Tags 预订
// @Produce json
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/reservations/{id} [delete]
func (h *Handler) DeleteReservation(c *gin.Context) {
	reservationID, ok := handler.ParseID(c, "预订")
	if !ok {
		return
	}

	err := h.reservationService.DeleteReservation(c.Request.Context(), reservationID)
	handler.MustSucceedWithMessage(c, err, "预订删除成功", nil)
}
