package hotel

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-reservation-backend/internal/common/handler"
	"github.com/dumeirei/hotel-reservation-backend/internal/common/response"
	hotelService "github.com/dumeirei/hotel-reservation-backend/internal/service/hotel"
)

// RoomHandler 房间处理器
type RoomHandler struct {
	roomService *hotelService.RoomService
}

// NewRoomHandler 创建房间处理器
func NewRoomHandler(roomSvc *hotelService.RoomService) *RoomHandler {
	return &RoomHandler{
		roomService: roomSvc,
	}
}

// CreateRoom 登记房间
// @Summary 在酒店下登记房间
// @Tags 房间
// @Accept json
// @Produce json
// @Param request body hotelService.CreateRoomRequest true "房间信息"
// @Success 201 {object} response.Response{data=hotelService.RoomInfo}
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/rooms [post]
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req hotelService.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, "参数错误")
		return
	}

	room, err := h.roomService.CreateRoom(c.Request.Context(), &req)
	handler.MustSucceedCreatedWithMessage(c, err, "房间登记成功", room)
}

// GetRoomList 获取房间列表
// @Summary 获取房间列表
// @Tags 房间
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param hotel_id query int false "酒店ID"
// @Param room_type query string false "房型 STANDARD/SUITE"
// @Param occupancy query string false "入住规格 SINGLE/DOUBLE/TRIPLE"
// @Param available query bool false "是否可用"
// @Param min_capacity query int false "最小容量"
// @Success 200 {object} response.Response{data=response.PageData}
// @Router /api/v1/rooms [get]
func (h *RoomHandler) GetRoomList(c *gin.Context) {
	var req hotelService.RoomListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.UnprocessableEntity(c, "参数错误")
		return
	}

	rooms, total, err := h.roomService.GetRoomList(c.Request.Context(), &req)
	handler.MustSucceedPage(c, err, rooms, total, req.Page, req.PageSize)
}

// GetAvailableRooms 查询日期范围内可预订的房间
// @Summary 查询指定酒店在入住/退房日期内无冲突的房间
// @Tags 房间
// @Produce json
// @Param hotel_id query int true "酒店ID"
// @Param check_in_date query string true "入住日期 YYYY-MM-DD"
// @Param check_out_date query string true "退房日期 YYYY-MM-DD"
// @Param room_type query string false "房型"
// @Param min_capacity query int false "最小容量"
// @Success 200 {object} response.Response{data=[]hotelService.RoomInfo}
// @Failure 422 {object} response.Response
// @Router /api/v1/rooms/available [get]
func (h *RoomHandler) GetAvailableRooms(c *gin.Context) {
	hotelID, ok := handler.ParseRequiredQueryID(c, "hotel_id", "酒店")
	if !ok {
		return
	}
	checkIn, checkOut, ok := handler.ParseStayDateRange(c)
	if !ok {
		return
	}

	roomType := c.Query("room_type")
	minCapacity := 0
	if s := c.Query("min_capacity"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			response.UnprocessableEntity(c, "无效的最小容量")
			return
		}
		minCapacity = v
	}

	rooms, err := h.roomService.ListAvailableRooms(c.Request.Context(), hotelID, checkIn, checkOut, roomType, minCapacity)
	handler.MustSucceed(c, err, rooms)
}

// GetRoom 获取房间详情
// @Summary 获取房间详情
// @Tags 房间
// @Produce json
// @Param id path int true "房间ID"
// @Success 200 {object} response.Response{data=hotelService.RoomInfo}
// @Failure 404 {object} response.Response
// @Router /api/v1/rooms/{id} [get]
func (h *RoomHandler) GetRoom(c *gin.Context) {
	roomID, ok := handler.ParseID(c, "房间")
	if !ok {
		return
	}

	room, err := h.roomService.GetRoom(c.Request.Context(), roomID)
	handler.MustSucceed(c, err, room)
}

// UpdateRoom 更新房间
// @Summary 更新房间
// @Tags 房间
// @Accept json
// @Produce json
// @Param id path int true "房间ID"
// @Param request body hotelService.UpdateRoomRequest true "更新内容"
// @Success 200 {object} response.Response{data=hotelService.RoomInfo}
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/rooms/{id} [put]
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	roomID, ok := handler.ParseID(c, "房间")
	if !ok {
		return
	}

	var req hotelService.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, "参数错误")
		return
	}

	room, err := h.roomService.UpdateRoom(c.Request.Context(), roomID, &req)
	handler.MustSucceedWithMessage(c, err, "房间更新成功", room)
}

// availabilityRequest 可用状态请求体
type availabilityRequest struct {
	Available *bool `json:"available" binding:"required"`
}

// SetAvailability 设置房间可用状态
// @Summary 设置房间可用状态（维护/恢复）
// @Tags 房间
// @Accept json
// @Produce json
// @Param id path int true "房间ID"
// @Param request body availabilityRequest true "可用状态"
// @Success 200 {object} response.Response{data=hotelService.RoomInfo}
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/rooms/{id}/availability [patch]
func (h *RoomHandler) SetAvailability(c *gin.Context) {
	roomID, ok := handler.ParseID(c, "房间")
	if !ok {
		return
	}

	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, "参数错误")
		return
	}

	room, err := h.roomService.SetAvailability(c.Request.Context(), roomID, *req.Available)
	handler.MustSucceedWithMessage(c, err, "房间状态更新成功", room)
}

// DeleteRoom 删除房间
// @Summary 删除房间，存在任意状态预订时返回 422
// @Tags 房间
// @Produce json
// @Param id path int true "房间ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/rooms/{id} [delete]
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	roomID, ok := handler.ParseID(c, "房间")
	if !ok {
		return
	}

	err := h.roomService.DeleteRoom(c.Request.Context(), roomID)
	handler.MustSucceedWithMessage(c, err, "房间删除成功", nil)
}
