// Package repository 酒店仓储单元测试
package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dumeirei/hotel-reservation-backend/internal/models"
)

func setupHotelTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Hotel{}, &models.Room{}, &models.Guest{}, &models.Reservation{}, &models.ReservationGuest{})
	require.NoError(t, err)

	return db
}

func TestHotelRepository_Create(t *testing.T) {
	db := setupHotelTestDB(t)
	repo := NewHotelRepository(db)
	ctx := context.Background()

	hotel := &models.Hotel{
		Name:      "测试酒店",
		Address:   "科技园路1号",
		City:      "深圳市",
		TaxID:     "TAX-0001",
		RoomCount: 50,
	}

	err := repo.Create(ctx, hotel)
	require.NoError(t, err)
	assert.NotZero(t, hotel.ID)
}

func TestHotelRepository_Create_DuplicateTaxID(t *testing.T) {
	db := setupHotelTestDB(t)
	repo := NewHotelRepository(db)
	ctx := context.Background()

	err := repo.Create(ctx, &models.Hotel{
		Name: "酒店甲", Address: "addr1", City: "深圳市", TaxID: "TAX-0001", RoomCount: 10,
	})
	require.NoError(t, err)

	err = repo.Create(ctx, &models.Hotel{
		Name: "酒店乙", Address: "addr2", City: "广州市", TaxID: "TAX-0001", RoomCount: 20,
	})
	assert.Error(t, err) // 税号唯一索引
}

func TestHotelRepository_GetByID(t *testing.T) {
	db := setupHotelTestDB(t)
	repo := NewHotelRepository(db)
	ctx := context.Background()

	hotel := &models.Hotel{
		Name: "测试酒店", Address: "科技园路1号", City: "深圳市", TaxID: "TAX-0001", RoomCount: 50,
	}
	db.Create(hotel)

	found, err := repo.GetByID(ctx, hotel.ID)
	require.NoError(t, err)
	assert.Equal(t, hotel.ID, found.ID)
	assert.Equal(t, "测试酒店", found.Name)

	_, err = repo.GetByID(ctx, 99999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestHotelRepository_GetByIDWithRooms(t *testing.T) {
	db := setupHotelTestDB(t)
	repo := NewHotelRepository(db)
	ctx := context.Background()

	hotel := &models.Hotel{
		Name: "测试酒店", Address: "科技园路1号", City: "深圳市", TaxID: "TAX-0001", RoomCount: 50,
	}
	db.Create(hotel)

	db.Create(&models.Room{
		HotelID: hotel.ID, RoomNumber: "201", RoomType: models.RoomTypeSuite,
		Occupancy: models.OccupancyDouble, Capacity: 2, Available: true,
	})
	db.Create(&models.Room{
		HotelID: hotel.ID, RoomNumber: "101", RoomType: models.RoomTypeStandard,
		Occupancy: models.OccupancySingle, Capacity: 1, Available: true,
	})

	found, err := repo.GetByIDWithRooms(ctx, hotel.ID)
	require.NoError(t, err)
	require.Equal(t, 2, len(found.Rooms))
	assert.Equal(t, "101", found.Rooms[0].RoomNumber) // 按房间号排序
}

func TestHotelRepository_Update(t *testing.T) {
	db := setupHotelTestDB(t)
	repo := NewHotelRepository(db)
	ctx := context.Background()

	hotel := &models.Hotel{
		Name: "原酒店名", Address: "原地址", City: "深圳市", TaxID: "TAX-0001", RoomCount: 50,
	}
	db.Create(hotel)

	hotel.Name = "新酒店名"
	hotel.Address = "新地址"
	err := repo.Update(ctx, hotel)
	require.NoError(t, err)

	var found models.Hotel
	db.First(&found, hotel.ID)
	assert.Equal(t, "新酒店名", found.Name)
	assert.Equal(t, "新地址", found.Address)
}

func TestHotelRepository_UpdateFields(t *testing.T) {
	db := setupHotelTestDB(t)
	repo := NewHotelRepository(db)
	ctx := context.Background()

	hotel := &models.Hotel{
		Name: "测试酒店", Address: "科技园路1号", City: "深圳市", TaxID: "TAX-0001", RoomCount: 50,
	}
	db.Create(hotel)

	err := repo.UpdateFields(ctx, hotel.ID, map[string]interface{}{
		"city":       "广州市",
		"room_count": 80,
	})
	require.NoError(t, err)

	var found models.Hotel
	db.First(&found, hotel.ID)
	assert.Equal(t, "广州市", found.City)
	assert.Equal(t, 80, found.RoomCount)
}

func TestHotelRepository_List(t *testing.T) {
	db := setupHotelTestDB(t)
	repo := NewHotelRepository(db)
	ctx := context.Background()

	hotels := []*models.Hotel{
		{Name: "深圳湾酒店", Address: "addr1", City: "深圳市", TaxID: "TAX-0001", RoomCount: 50},
		{Name: "珠江酒店", Address: "addr2", City: "广州市", TaxID: "TAX-0002", RoomCount: 30},
		{Name: "深圳北酒店", Address: "addr3", City: "深圳市", TaxID: "TAX-0003", RoomCount: 20},
	}
	for _, h := range hotels {
		db.Create(h)
	}

	// 全部酒店
	list, total, err := repo.List(ctx, 0, 10, map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, 3, len(list))

	// 按城市过滤
	_, total, err = repo.List(ctx, 0, 10, map[string]interface{}{
		"city": "深圳市",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	// 按名称模糊查询
	_, total, err = repo.List(ctx, 0, 10, map[string]interface{}{
		"name": "珠江",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	// 分页
	list, total, err = repo.List(ctx, 0, 2, map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, 2, len(list))
}

func TestHotelRepository_GetCities(t *testing.T) {
	db := setupHotelTestDB(t)
	repo := NewHotelRepository(db)
	ctx := context.Background()

	hotels := []*models.Hotel{
		{Name: "深圳酒店", Address: "addr1", City: "深圳市", TaxID: "TAX-0001", RoomCount: 10},
		{Name: "广州酒店", Address: "addr2", City: "广州市", TaxID: "TAX-0002", RoomCount: 10},
		{Name: "北京酒店", Address: "addr3", City: "北京市", TaxID: "TAX-0003", RoomCount: 10},
	}
	for _, h := range hotels {
		db.Create(h)
	}

	cities, err := repo.GetCities(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, len(cities))
	assert.Contains(t, cities, "深圳市")
	assert.Contains(t, cities, "广州市")
	assert.Contains(t, cities, "北京市")
}

func TestHotelRepository_ExistsByTaxID(t *testing.T) {
	db := setupHotelTestDB(t)
	repo := NewHotelRepository(db)
	ctx := context.Background()

	hotel := &models.Hotel{
		Name: "测试酒店", Address: "addr1", City: "深圳市", TaxID: "TAX-0001", RoomCount: 10,
	}
	db.Create(hotel)

	exists, err := repo.ExistsByTaxID(ctx, "TAX-0001", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByTaxID(ctx, "TAX-9999", 0)
	require.NoError(t, err)
	assert.False(t, exists)

	// 排除自身后不算重复
	exists, err = repo.ExistsByTaxID(ctx, "TAX-0001", hotel.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestHotelRepository_Delete(t *testing.T) {
	db := setupHotelTestDB(t)
	repo := NewHotelRepository(db)
	ctx := context.Background()

	hotel := &models.Hotel{
		Name: "待删除酒店", Address: "addr1", City: "深圳市", TaxID: "TAX-0001", RoomCount: 10,
	}
	db.Create(hotel)

	err := repo.Delete(ctx, hotel.ID)
	require.NoError(t, err)

	var count int64
	db.Model(&models.Hotel{}).Where("id = ?", hotel.ID).Count(&count)
	assert.Equal(t, int64(0), count) // 硬删除，记录不存在
}

func TestHotelRepository_GetRoomCount(t *testing.T) {
	db := setupHotelTestDB(t)
	repo := NewHotelRepository(db)
	ctx := context.Background()

	hotel := &models.Hotel{
		Name: "测试酒店", Address: "addr1", City: "深圳市", TaxID: "TAX-0001", RoomCount: 10,
	}
	db.Create(hotel)

	occupancies := []string{models.OccupancySingle, models.OccupancyDouble, models.OccupancyTriple}
	for i, occ := range occupancies {
		db.Create(&models.Room{
			HotelID: hotel.ID, RoomNumber: fmt.Sprintf("10%d", i+1),
			RoomType: models.RoomTypeStandard, Occupancy: occ,
			Capacity: i + 1, Available: i != 2,
		})
	}

	count, err := repo.GetRoomCount(ctx, hotel.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	available, err := repo.GetAvailableRoomCount(ctx, hotel.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), available)
}

func TestHotelRepository_GetRoomCountByType(t *testing.T) {
	db := setupHotelTestDB(t)
	repo := NewHotelRepository(db)
	ctx := context.Background()

	hotel := &models.Hotel{
		Name: "测试酒店", Address: "addr1", City: "深圳市", TaxID: "TAX-0001", RoomCount: 10,
	}
	db.Create(hotel)

	db.Create(&models.Room{
		HotelID: hotel.ID, RoomNumber: "101", RoomType: models.RoomTypeStandard,
		Occupancy: models.OccupancySingle, Capacity: 1, Available: true,
	})
	db.Create(&models.Room{
		HotelID: hotel.ID, RoomNumber: "102", RoomType: models.RoomTypeStandard,
		Occupancy: models.OccupancyDouble, Capacity: 2, Available: true,
	})
	db.Create(&models.Room{
		HotelID: hotel.ID, RoomNumber: "201", RoomType: models.RoomTypeSuite,
		Occupancy: models.OccupancyQuadruple, Capacity: 4, Available: true,
	})

	stats, err := repo.GetRoomCountByType(ctx, hotel.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats[models.RoomTypeStandard])
	assert.Equal(t, int64(1), stats[models.RoomTypeSuite])
}

func TestHotelRepository_Search(t *testing.T) {
	db := setupHotelTestDB(t)
	repo := NewHotelRepository(db)
	ctx := context.Background()

	hotels := []*models.Hotel{
		{Name: "豪华海景酒店", Address: "海滨路8号", City: "深圳市", TaxID: "TAX-0001", RoomCount: 10},
		{Name: "商务酒店", Address: "福华路66号", City: "深圳市", TaxID: "TAX-0002", RoomCount: 20},
	}
	for _, h := range hotels {
		db.Create(h)
	}

	// 搜索名称
	list, total, err := repo.Search(ctx, "海景", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, 1, len(list))

	// 搜索地址
	_, total, err = repo.Search(ctx, "福华路", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
