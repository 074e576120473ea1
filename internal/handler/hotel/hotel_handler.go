// Package hotel 提供酒店与房间相关的 HTTP Handler
package hotel

import (
	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-reservation-backend/internal/common/handler"
	"github.com/dumeirei/hotel-reservation-backend/internal/common/response"
	hotelService "github.com/dumeirei/hotel-reservation-backend/internal/service/hotel"
)

// Handler 酒店处理器
type Handler struct {
	hotelService *hotelService.HotelService
}

// NewHandler 创建酒店处理器
func NewHandler(hotelSvc *hotelService.HotelService) *Handler {
	return &Handler{
		hotelService: hotelSvc,
	}
}

// CreateHotel 创建酒店
// @Summary 创建酒店
// @Tags 酒店
// @Accept json
// @Produce json
// @Param request body hotelService.CreateHotelRequest true "酒店信息"
// @Success 201 {object} response.Response{data=hotelService.HotelInfo}
// @Failure 422 {object} response.Response
// @Router /api/v1/hotels [post]
func (h *Handler) CreateHotel(c *gin.Context) {
	var req hotelService.CreateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, "参数错误")
		return
	}

	hotel, err := h.hotelService.CreateHotel(c.Request.Context(), &req)
	handler.MustSucceedCreatedWithMessage(c, err, "酒店创建成功", hotel)
}

// GetHotelList 获取酒店列表
// @Summary 获取酒店列表
// @Tags 酒店
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param name query string false "名称"
// @Param city query string false "城市"
// @Param keyword query string false "关键词"
// @Success 200 {object} response.Response{data=response.PageData}
// @Router /api/v1/hotels [get]
func (h *Handler) GetHotelList(c *gin.Context) {
	var req hotelService.HotelListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.UnprocessableEntity(c, "参数错误")
		return
	}

	hotels, total, err := h.hotelService.GetHotelList(c.Request.Context(), &req)
	handler.MustSucceedPage(c, err, hotels, total, req.Page, req.PageSize)
}

// GetHotel 获取酒店详情
// @Summary 获取酒店详情（包含房间列表）
// @Tags 酒店
// @Produce json
// @Param id path int true "酒店ID"
// @Success 200 {object} response.Response{data=hotelService.HotelInfo}
// @Failure 404 {object} response.Response
// @Router /api/v1/hotels/{id} [get]
func (h *Handler) GetHotel(c *gin.Context) {
	hotelID, ok := handler.ParseID(c, "酒店")
	if !ok {
		return
	}

	hotel, err := h.hotelService.GetHotel(c.Request.Context(), hotelID)
	handler.MustSucceed(c, err, hotel)
}

// UpdateHotel 更新酒店
// @Summary 更新酒店
// @Tags 酒店
// @Accept json
// @Produce json
// @Param id path int true "酒店ID"
// @Param request body hotelService.UpdateHotelRequest true "更新内容"
// @Success 200 {object} response.Response{data=hotelService.HotelInfo}
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/hotels/{id} [put]
func (h *Handler) UpdateHotel(c *gin.Context) {
	hotelID, ok := handler.ParseID(c, "酒店")
	if !ok {
		return
	}

	var req hotelService.UpdateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, "参数错误")
		return
	}

	hotel, err := h.hotelService.UpdateHotel(c.Request.Context(), hotelID, &req)
	handler.MustSucceedWithMessage(c, err, "酒店更新成功", hotel)
}

// DeleteHotel 删除酒店
// @Summary 删除酒店，存在已登记房间时返回 422
// @Tags 酒店
// @Produce json
// @Param id path int true "酒店ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/hotels/{id} [delete]
func (h *Handler) DeleteHotel(c *gin.Context) {
	hotelID, ok := handler.ParseID(c, "酒店")
	if !ok {
		return
	}

	err := h.hotelService.DeleteHotel(c.Request.Context(), hotelID)
	handler.MustSucceedWithMessage(c, err, "酒店删除成功", nil)
}

// GetCities 获取城市列表
// @Summary 获取已有酒店的城市列表
// @Tags 酒店
// @Produce json
// @Success 200 {object} response.Response{data=[]string}
// @Router /api/v1/hotels/cities [get]
func (h *Handler) GetCities(c *gin.Context) {
	cities, err := h.hotelService.GetCities(c.Request.Context())
	handler.MustSucceed(c, err, cities)
}

// GetHotelStatistics 获取酒店统计
// @Summary 获取酒店房间统计信息
// @Tags 酒店
// @Produce json
// @Param id path int true "酒店ID"
// @Success 200 {object} response.Response{data=hotelService.HotelStatistics}
// @Failure 404 {object} response.Response
// @Router /api/v1/hotels/{id}/statistics [get]
func (h *Handler) GetHotelStatistics(c *gin.Context) {
	hotelID, ok := handler.ParseID(c, "酒店")
	if !ok {
		return
	}

	stats, err := h.hotelService.GetHotelStatistics(c.Request.Context(), hotelID)
	handler.MustSucceed(c, err, stats)
}
