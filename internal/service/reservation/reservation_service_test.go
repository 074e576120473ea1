// Package reservation 预订服务单元测试
package reservation

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dumeirei/hotel-reservation-backend/internal/common/errors"
	"github.com/dumeirei/hotel-reservation-backend/internal/models"
	"github.com/dumeirei/hotel-reservation-backend/internal/repository"
	"github.com/dumeirei/hotel-reservation-backend/pkg/sms"
)

type reservationTestEnv struct {
	db      *gorm.DB
	service *ReservationService
	sender  *sms.MockSender
	hotel   *models.Hotel
	room    *models.Room
	guest   *models.Guest
}

func setupReservationServiceTest(t *testing.T) *reservationTestEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&models.Hotel{}, &models.Room{}, &models.Guest{}, &models.Reservation{}, &models.ReservationGuest{})
	require.NoError(t, err)

	sender := sms.NewMockSender()
	service := NewReservationService(
		db,
		repository.NewReservationRepository(db),
		repository.NewRoomRepository(db),
		repository.NewHotelRepository(db),
		repository.NewGuestRepository(db),
		sender,
	)

	hotel := &models.Hotel{Name: "测试酒店", Address: "科技园路1号", City: "深圳市", TaxID: "TAX-0001", RoomCount: 10}
	require.NoError(t, db.Create(hotel).Error)

	room := &models.Room{
		HotelID: hotel.ID, RoomNumber: "101", RoomType: models.RoomTypeStandard,
		Occupancy: models.OccupancyDouble, Capacity: 2, Available: true,
	}
	require.NoError(t, db.Create(room).Error)

	guest := &models.Guest{
		FirstName: "小", LastName: "李", DocumentType: models.DocumentTypeNationalID,
		DocumentNumber: "D-1001", Phone: "+8613800138000",
		BirthDate: time.Date(1992, 3, 15, 0, 0, 0, 0, time.UTC),
		Gender:    models.GenderFemale, Nationality: "中国",
	}
	require.NoError(t, db.Create(guest).Error)

	return &reservationTestEnv{
		db: db, service: service, sender: sender,
		hotel: hotel, room: room, guest: guest,
	}
}

func (env *reservationTestEnv) createRequest() *CreateReservationRequest {
	return &CreateReservationRequest{
		HotelID:      env.hotel.ID,
		RoomID:       env.room.ID,
		GuestID:      env.guest.ID,
		CheckInDate:  "2026-01-10",
		CheckOutDate: "2026-01-15",
		GuestCount:   2,
		TotalPrice:   1000,
	}
}

func TestReservationService_CreateReservation(t *testing.T) {
	env := setupReservationServiceTest(t)
	ctx := context.Background()

	info, err := env.service.CreateReservation(ctx, env.createRequest())
	require.NoError(t, err)

	assert.NotZero(t, info.ID)
	assert.True(t, strings.HasPrefix(info.ReservationCode, "R"))
	assert.Equal(t, models.ReservationStatusPending, info.Status)
	assert.Equal(t, "待确认", info.StatusName)
	assert.Equal(t, 5, info.Nights)
	assert.Equal(t, "测试酒店", info.HotelName)
	assert.Equal(t, "101", info.RoomNumber)
	assert.Equal(t, "小 李", info.GuestName)

	// 主客人关联已建立
	require.Len(t, info.Guests, 1)
	assert.True(t, info.Guests[0].IsTitular)
	assert.Equal(t, env.guest.ID, info.Guests[0].ID)
}

func TestReservationService_CreateReservation_WithCompanions(t *testing.T) {
	env := setupReservationServiceTest(t)
	ctx := context.Background()

	companion := &models.Guest{
		FirstName: "大", LastName: "王", DocumentType: models.DocumentTypeMinorID,
		DocumentNumber: "M-2002", Phone: "+8613900139000",
		BirthDate: time.Date(2012, 6, 1, 0, 0, 0, 0, time.UTC),
		Gender:    models.GenderMale, Nationality: "中国",
	}
	require.NoError(t, env.db.Create(companion).Error)

	req := env.createRequest()
	// 重复与主客人 ID 会被忽略
	req.CompanionIDs = []int64{companion.ID, companion.ID, env.guest.ID}

	info, err := env.service.CreateReservation(ctx, req)
	require.NoError(t, err)

	require.Len(t, info.Guests, 2)
	assert.True(t, info.Guests[0].IsTitular) // 主客人排前
	assert.False(t, info.Guests[1].IsTitular)

	// 不存在的同行客人
	req2 := env.createRequest()
	req2.CheckInDate = "2026-03-01"
	req2.CheckOutDate = "2026-03-05"
	req2.CompanionIDs = []int64{99999}
	_, err = env.service.CreateReservation(ctx, req2)
	require.Error(t, err)
	assert.Equal(t, 404, errors.GetAppError(err).Status)
}

func TestReservationService_CreateReservation_UnderageGuest(t *testing.T) {
	env := setupReservationServiceTest(t)
	ctx := context.Background()

	// 入住日当天未满 18 周岁
	minor := &models.Guest{
		FirstName: "小", LastName: "张", DocumentType: models.DocumentTypeMinorID,
		DocumentNumber: "M-3003", Phone: "+8613700137000",
		BirthDate: time.Date(2010, 1, 11, 0, 0, 0, 0, time.UTC),
		Gender:    models.GenderMale, Nationality: "中国",
	}
	require.NoError(t, env.db.Create(minor).Error)

	req := env.createRequest()
	req.GuestID = minor.ID
	_, err := env.service.CreateReservation(ctx, req)
	assert.ErrorIs(t, err, errors.ErrGuestUnderage)

	// 生日当天即满 18 周岁，可以预订
	adultOnCheckIn := &models.Guest{
		FirstName: "小", LastName: "赵", DocumentType: models.DocumentTypeNationalID,
		DocumentNumber: "D-4004", Phone: "+8613600136000",
		BirthDate: time.Date(2008, 1, 10, 0, 0, 0, 0, time.UTC),
		Gender:    models.GenderFemale, Nationality: "中国",
	}
	require.NoError(t, env.db.Create(adultOnCheckIn).Error)

	req2 := env.createRequest()
	req2.GuestID = adultOnCheckIn.ID
	_, err = env.service.CreateReservation(ctx, req2)
	assert.NoError(t, err)
}

func TestReservationService_CreateReservation_InvalidDates(t *testing.T) {
	env := setupReservationServiceTest(t)
	ctx := context.Background()

	req := env.createRequest()
	req.CheckOutDate = req.CheckInDate
	_, err := env.service.CreateReservation(ctx, req)
	assert.ErrorIs(t, err, errors.ErrDateRangeInvalid)

	req = env.createRequest()
	req.CheckInDate = "10/01/2026"
	_, err = env.service.CreateReservation(ctx, req)
	require.Error(t, err)
	assert.Equal(t, 422, errors.GetAppError(err).Status)
}

func TestReservationService_CreateReservation_CapacityExceeded(t *testing.T) {
	env := setupReservationServiceTest(t)
	ctx := context.Background()

	req := env.createRequest()
	req.GuestCount = 3 // 双人房容纳 2 人
	_, err := env.service.CreateReservation(ctx, req)
	assert.ErrorIs(t, err, errors.ErrCapacityExceeded)

	req = env.createRequest()
	req.GuestCount = 0
	_, err = env.service.CreateReservation(ctx, req)
	assert.ErrorIs(t, err, errors.ErrGuestCountInvalid)
}

func TestReservationService_CreateReservation_RoomNotAvailable(t *testing.T) {
	env := setupReservationServiceTest(t)
	ctx := context.Background()

	require.NoError(t, env.db.Model(env.room).Update("available", false).Error)

	_, err := env.service.CreateReservation(ctx, env.createRequest())
	assert.ErrorIs(t, err, errors.ErrRoomNotAvailable)
}

func TestReservationService_CreateReservation_DateConflict(t *testing.T) {
	env := setupReservationServiceTest(t)
	ctx := context.Background()

	_, err := env.service.CreateReservation(ctx, env.createRequest())
	require.NoError(t, err)

	// 区间重叠
	req := env.createRequest()
	req.CheckInDate = "2026-01-12"
	req.CheckOutDate = "2026-01-20"
	_, err = env.service.CreateReservation(ctx, req)
	assert.ErrorIs(t, err, errors.ErrDateConflict)

	// 闭区间：同日退房入住也算冲突
	req = env.createRequest()
	req.CheckInDate = "2026-01-15"
	req.CheckOutDate = "2026-01-20"
	_, err = env.service.CreateReservation(ctx, req)
	assert.ErrorIs(t, err, errors.ErrDateConflict)

	// 紧邻日期不冲突
	req = env.createRequest()
	req.CheckInDate = "2026-01-16"
	req.CheckOutDate = "2026-01-20"
	_, err = env.service.CreateReservation(ctx, req)
	assert.NoError(t, err)
}

func TestReservationService_CancelledReservationFreesDates(t *testing.T) {
	env := setupReservationServiceTest(t)
	ctx := context.Background()

	first, err := env.service.CreateReservation(ctx, env.createRequest())
	require.NoError(t, err)

	_, err = env.service.CancelReservation(ctx, first.ID)
	require.NoError(t, err)

	// 取消后同日期可重新预订
	info, err := env.service.CreateReservation(ctx, env.createRequest())
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusPending, info.Status)
}

func TestReservationService_ConfirmReservation(t *testing.T) {
	env := setupReservationServiceTest(t)
	ctx := context.Background()

	created, err := env.service.CreateReservation(ctx, env.createRequest())
	require.NoError(t, err)

	info, err := env.service.ConfirmReservation(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusConfirmed, info.Status)

	// 确认短信异步发送
	require.Eventually(t, func() bool {
		return env.sender.Count() == 1
	}, 2*time.Second, 20*time.Millisecond)

	msg := env.sender.GetLastMessage()
	assert.Equal(t, "+8613800138000", msg.Phone)
	assert.Equal(t, sms.TemplateReservationConfirmed, msg.Template)
	assert.Equal(t, created.ReservationCode, msg.Params["code"])

	// 重复确认
	_, err = env.service.ConfirmReservation(ctx, created.ID)
	assert.ErrorIs(t, err, errors.ErrAlreadyConfirmed)
}

func TestReservationService_CancelReservation(t *testing.T) {
	env := setupReservationServiceTest(t)
	ctx := context.Background()

	created, err := env.service.CreateReservation(ctx, env.createRequest())
	require.NoError(t, err)

	// 已确认的预订仍可取消
	_, err = env.service.ConfirmReservation(ctx, created.ID)
	require.NoError(t, err)

	info, err := env.service.CancelReservation(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusCancelled, info.Status)

	// 重复取消
	_, err = env.service.CancelReservation(ctx, created.ID)
	assert.ErrorIs(t, err, errors.ErrAlreadyCancelled)

	// 已取消不能再确认
	_, err = env.service.ConfirmReservation(ctx, created.ID)
	assert.ErrorIs(t, err, errors.ErrCancelledImmutable)
}

func TestReservationService_UpdateStatus_BackToPending(t *testing.T) {
	env := setupReservationServiceTest(t)
	ctx := context.Background()

	created, err := env.service.CreateReservation(ctx, env.createRequest())
	require.NoError(t, err)

	_, err = env.service.UpdateStatus(ctx, created.ID, models.ReservationStatusPending)
	require.Error(t, err)
	assert.Equal(t, 422, errors.GetAppError(err).Status)

	_, err = env.service.UpdateStatus(ctx, created.ID, "UNKNOWN")
	require.Error(t, err)
	assert.Equal(t, 422, errors.GetAppError(err).Status)
}

func TestReservationService_UpdateReservation(t *testing.T) {
	env := setupReservationServiceTest(t)
	ctx := context.Background()

	created, err := env.service.CreateReservation(ctx, env.createRequest())
	require.NoError(t, err)

	// 调整自身日期，冲突检查排除自身
	newCheckIn := "2026-01-12"
	newCheckOut := "2026-01-18"
	info, err := env.service.UpdateReservation(ctx, created.ID, &UpdateReservationRequest{
		CheckInDate:  &newCheckIn,
		CheckOutDate: &newCheckOut,
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-01-12", info.CheckInDate)
	assert.Equal(t, 6, info.Nights)
}

func TestReservationService_UpdateReservation_StatusGuards(t *testing.T) {
	env := setupReservationServiceTest(t)
	ctx := context.Background()

	created, err := env.service.CreateReservation(ctx, env.createRequest())
	require.NoError(t, err)

	_, err = env.service.ConfirmReservation(ctx, created.ID)
	require.NoError(t, err)

	// 不变更状态时，已确认的预订内容被锁定
	newCheckOut := "2026-01-20"
	_, err = env.service.UpdateReservation(ctx, created.ID, &UpdateReservationRequest{
		CheckOutDate: &newCheckOut,
	})
	require.Error(t, err)
	assert.Equal(t, 422, errors.GetAppError(err).Status)

	// 已取消的预订可以继续修改
	_, err = env.service.CancelReservation(ctx, created.ID)
	require.NoError(t, err)
	info, err := env.service.UpdateReservation(ctx, created.ID, &UpdateReservationRequest{
		CheckOutDate: &newCheckOut,
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-01-20", info.CheckOutDate)
	assert.Equal(t, models.ReservationStatusCancelled, info.Status)

	// 已取消的预订不能通过更新请求重新确认
	confirmed := models.ReservationStatusConfirmed
	_, err = env.service.UpdateReservation(ctx, created.ID, &UpdateReservationRequest{
		Status: &confirmed,
	})
	assert.ErrorIs(t, err, errors.ErrCancelledImmutable)
}

func TestReservationService_UpdateReservation_WithStatusChange(t *testing.T) {
	env := setupReservationServiceTest(t)
	ctx := context.Background()

	created, err := env.service.CreateReservation(ctx, env.createRequest())
	require.NoError(t, err)

	_, err = env.service.ConfirmReservation(ctx, created.ID)
	require.NoError(t, err)

	// 同请求流转状态时允许修改已确认预订的内容
	cancelled := models.ReservationStatusCancelled
	newPrice := 800.0
	info, err := env.service.UpdateReservation(ctx, created.ID, &UpdateReservationRequest{
		TotalPrice: &newPrice,
		Status:     &cancelled,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusCancelled, info.Status)
	assert.Equal(t, 800.0, info.TotalPrice)

	// 待确认预订可随内容修改一并确认，并触发短信通知
	second, err := env.service.CreateReservation(ctx, env.createRequest())
	require.NoError(t, err)
	confirmed := models.ReservationStatusConfirmed
	newCount := 1
	info, err = env.service.UpdateReservation(ctx, second.ID, &UpdateReservationRequest{
		GuestCount: &newCount,
		Status:     &confirmed,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusConfirmed, info.Status)
	assert.Equal(t, 1, info.GuestCount)
	// 第一次 Confirm 已发过一条
	require.Eventually(t, func() bool {
		return env.sender.Count() == 2
	}, 2*time.Second, 20*time.Millisecond)

	// 无效的目标状态
	bogus := "UNKNOWN"
	_, err = env.service.UpdateReservation(ctx, second.ID, &UpdateReservationRequest{
		Status: &bogus,
	})
	require.Error(t, err)
	assert.Equal(t, 422, errors.GetAppError(err).Status)
}

func TestReservationService_UpdateReservation_ConflictWithOther(t *testing.T) {
	env := setupReservationServiceTest(t)
	ctx := context.Background()

	_, err := env.service.CreateReservation(ctx, env.createRequest())
	require.NoError(t, err)

	req := env.createRequest()
	req.CheckInDate = "2026-02-01"
	req.CheckOutDate = "2026-02-05"
	second, err := env.service.CreateReservation(ctx, req)
	require.NoError(t, err)

	// 移动到与第一个预订重叠的日期
	conflictIn := "2026-01-12"
	conflictOut := "2026-01-14"
	_, err = env.service.UpdateReservation(ctx, second.ID, &UpdateReservationRequest{
		CheckInDate:  &conflictIn,
		CheckOutDate: &conflictOut,
	})
	assert.ErrorIs(t, err, errors.ErrDateConflict)
}

func TestReservationService_DeleteReservation(t *testing.T) {
	env := setupReservationServiceTest(t)
	ctx := context.Background()

	created, err := env.service.CreateReservation(ctx, env.createRequest())
	require.NoError(t, err)

	_, err = env.service.ConfirmReservation(ctx, created.ID)
	require.NoError(t, err)

	// 已确认的预订不允许删除
	err = env.service.DeleteReservation(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, 422, errors.GetAppError(err).Status)

	// 取消后可删除，客人关联一并清除
	_, err = env.service.CancelReservation(ctx, created.ID)
	require.NoError(t, err)
	err = env.service.DeleteReservation(ctx, created.ID)
	require.NoError(t, err)

	_, err = env.service.GetReservation(ctx, created.ID)
	assert.ErrorIs(t, err, errors.ErrReservationNotFound)

	var linkCount int64
	env.db.Model(&models.ReservationGuest{}).Where("reservation_id = ?", created.ID).Count(&linkCount)
	assert.Equal(t, int64(0), linkCount)
}

func TestReservationService_GetReservationByCode(t *testing.T) {
	env := setupReservationServiceTest(t)
	ctx := context.Background()

	created, err := env.service.CreateReservation(ctx, env.createRequest())
	require.NoError(t, err)

	info, err := env.service.GetReservationByCode(ctx, created.ReservationCode)
	require.NoError(t, err)
	assert.Equal(t, created.ID, info.ID)

	_, err = env.service.GetReservationByCode(ctx, "R00000000000000000000")
	assert.ErrorIs(t, err, errors.ErrReservationNotFound)
}

func TestReservationService_GetReservationList(t *testing.T) {
	env := setupReservationServiceTest(t)
	ctx := context.Background()

	first, err := env.service.CreateReservation(ctx, env.createRequest())
	require.NoError(t, err)

	req := env.createRequest()
	req.CheckInDate = "2026-02-01"
	req.CheckOutDate = "2026-02-05"
	_, err = env.service.CreateReservation(ctx, req)
	require.NoError(t, err)

	_, err = env.service.ConfirmReservation(ctx, first.ID)
	require.NoError(t, err)

	_, total, err := env.service.GetReservationList(ctx, &ReservationListRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, total, err = env.service.GetReservationList(ctx, &ReservationListRequest{
		Status: models.ReservationStatusConfirmed,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = env.service.GetReservationList(ctx, &ReservationListRequest{
		StartDate: "2026-02-01", EndDate: "2026-02-28",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, _, err = env.service.GetReservationList(ctx, &ReservationListRequest{Status: "UNKNOWN"})
	require.Error(t, err)
	assert.Equal(t, 422, errors.GetAppError(err).Status)
}

func TestReservationService_CheckAvailability(t *testing.T) {
	env := setupReservationServiceTest(t)
	ctx := context.Background()

	created, err := env.service.CreateReservation(ctx, env.createRequest())
	require.NoError(t, err)

	// 重叠日期不可用
	info, err := env.service.CheckAvailability(ctx, env.room.ID, "2026-01-12", "2026-01-14", nil)
	require.NoError(t, err)
	assert.False(t, info.Available)

	// 排除自身后同日期可用，对应编辑预订场景
	info, err = env.service.CheckAvailability(ctx, env.room.ID, "2026-01-12", "2026-01-14", &created.ID)
	require.NoError(t, err)
	assert.True(t, info.Available)

	// 空闲日期可用
	info, err = env.service.CheckAvailability(ctx, env.room.ID, "2026-02-01", "2026-02-05", nil)
	require.NoError(t, err)
	assert.True(t, info.Available)
	assert.Equal(t, env.room.ID, info.RoomID)

	// 停用开关不影响纯日期冲突查询
	require.NoError(t, env.db.Model(env.room).Update("available", false).Error)
	info, err = env.service.CheckAvailability(ctx, env.room.ID, "2026-02-01", "2026-02-05", nil)
	require.NoError(t, err)
	assert.True(t, info.Available)

	_, err = env.service.CheckAvailability(ctx, 99999, "2026-02-01", "2026-02-05", nil)
	assert.ErrorIs(t, err, errors.ErrRoomNotFound)
}

func TestReservationService_GetStatistics(t *testing.T) {
	env := setupReservationServiceTest(t)
	ctx := context.Background()

	first, err := env.service.CreateReservation(ctx, env.createRequest())
	require.NoError(t, err)
	_, err = env.service.ConfirmReservation(ctx, first.ID)
	require.NoError(t, err)

	req := env.createRequest()
	req.CheckInDate = "2026-02-01"
	req.CheckOutDate = "2026-02-03"
	req.TotalPrice = 400
	_, err = env.service.CreateReservation(ctx, req)
	require.NoError(t, err)

	stats, err := env.service.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.StatusCounts[models.ReservationStatusConfirmed])
	assert.Equal(t, int64(1), stats.StatusCounts[models.ReservationStatusPending])
	assert.Equal(t, int64(2), stats.ActiveCount)
	assert.InDelta(t, 1000, stats.ConfirmedRevenue, 0.001)
	assert.InDelta(t, 3.5, stats.AverageNights, 0.001) // (5+2)/2
	assert.Equal(t, int64(1), stats.AvailableRooms)
}
