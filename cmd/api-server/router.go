// Package main 是应用程序入口
package main

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dumeirei/hotel-reservation-backend/internal/common/config"
	"github.com/dumeirei/hotel-reservation-backend/internal/common/metrics"
	commonMiddleware "github.com/dumeirei/hotel-reservation-backend/internal/common/middleware"
	guestHandler "github.com/dumeirei/hotel-reservation-backend/internal/handler/guest"
	hotelHandler "github.com/dumeirei/hotel-reservation-backend/internal/handler/hotel"
	reservationHandler "github.com/dumeirei/hotel-reservation-backend/internal/handler/reservation"
	"github.com/dumeirei/hotel-reservation-backend/internal/middleware"
	"github.com/dumeirei/hotel-reservation-backend/internal/repository"
	guestService "github.com/dumeirei/hotel-reservation-backend/internal/service/guest"
	hotelService "github.com/dumeirei/hotel-reservation-backend/internal/service/hotel"
	reservationService "github.com/dumeirei/hotel-reservation-backend/internal/service/reservation"
	"github.com/dumeirei/hotel-reservation-backend/pkg/sms"
)

// setupRouter 设置路由
func setupRouter(
	r *gin.Engine,
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	redisClient *redis.Client,
) {
	// 初始化仓储
	hotelRepo := repository.NewHotelRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	guestRepo := repository.NewGuestRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	operationLogRepo := repository.NewOperationLogRepository(db)

	// 初始化短信客户端
	smsSender := newSMSSender(cfg, logger)

	// 初始化服务
	hotelSvc := hotelService.NewHotelService(db, hotelRepo, roomRepo)
	roomSvc := hotelService.NewRoomService(db, roomRepo, hotelRepo, reservationRepo)
	guestSvc := guestService.NewGuestService(guestRepo)
	reservationSvc := reservationService.NewReservationService(
		db, reservationRepo, roomRepo, hotelRepo, guestRepo, smsSender)

	// 初始化处理器
	hotelH := hotelHandler.NewHandler(hotelSvc)
	roomH := hotelHandler.NewRoomHandler(roomSvc)
	guestH := guestHandler.NewHandler(guestSvc)
	reservationH := reservationHandler.NewHandler(reservationSvc)

	// 操作审计日志
	operationLogger := commonMiddleware.NewOperationLogger(operationLogRepo)

	// 全局中间件
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RealIP())
	r.Use(middleware.CORS(&middleware.CORSConfig{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))
	r.Use(middleware.AccessLog(logger))
	if cfg.Tracing.Enabled {
		r.Use(commonMiddleware.Tracing(&commonMiddleware.TracingConfig{
			ServiceName: cfg.Tracing.ServiceName,
			SkipPaths:   []string{"/health", "/ping", "/ready", "/metrics"},
		}))
	}
	if cfg.Metrics.Enabled {
		r.Use(metrics.GetMetrics().Middleware())
	}

	// 健康检查
	r.GET("/health", healthHandler)
	r.GET("/ping", pingHandler)
	r.GET("/ready", readyHandler(db, redisClient))

	// Prometheus 指标
	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, metrics.Handler())
	}

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 路由组
	v1 := r.Group("/api/v1")
	v1.Use(operationLogger.Log())
	{
		// 酒店
		hotels := v1.Group("/hotels")
		{
			hotels.POST("", hotelH.CreateHotel)
			hotels.GET("", hotelH.GetHotelList)
			hotels.GET("/cities", hotelH.GetCities)
			hotels.GET("/:id", hotelH.GetHotel)
			hotels.PUT("/:id", hotelH.UpdateHotel)
			hotels.DELETE("/:id", hotelH.DeleteHotel)
			hotels.GET("/:id/statistics", hotelH.GetHotelStatistics)
		}

		// 房间
		rooms := v1.Group("/rooms")
		{
			rooms.POST("", roomH.CreateRoom)
			rooms.GET("", roomH.GetRoomList)
			rooms.GET("/available", roomH.GetAvailableRooms)
			rooms.GET("/:id", roomH.GetRoom)
			rooms.PUT("/:id", roomH.UpdateRoom)
			rooms.PATCH("/:id/availability", roomH.SetAvailability)
			rooms.DELETE("/:id", roomH.DeleteRoom)
		}

		// 客人
		guests := v1.Group("/guests")
		{
			guests.POST("", guestH.CreateGuest)
			guests.GET("", guestH.GetGuestList)
			guests.GET("/by-document", guestH.GetGuestByDocument)
			guests.GET("/:id", guestH.GetGuest)
			guests.PUT("/:id", guestH.UpdateGuest)
			guests.DELETE("/:id", guestH.DeleteGuest)
			guests.GET("/:id/statistics", guestH.GetGuestStatistics)
		}

		// 预订
		reservations := v1.Group("/reservations")
		{
			// 创建接口单独限流
			if cfg.RateLimit.Enabled {
				reservations.POST("", middleware.BookingRateLimit(redisClient), reservationH.CreateReservation)
			} else {
				reservations.POST("", reservationH.CreateReservation)
			}
			reservations.GET("", reservationH.GetReservationList)
			reservations.GET("/availability", reservationH.CheckAvailability)
			reservations.GET("/statistics", reservationH.GetStatistics)
			reservations.GET("/code/:code", reservationH.GetReservationByCode)
			reservations.GET("/:id", reservationH.GetReservation)
			reservations.PUT("/:id", reservationH.UpdateReservation)
			reservations.PATCH("/:id/status", reservationH.UpdateStatus)
			reservations.POST("/:id/confirm", reservationH.ConfirmReservation)
			reservations.POST("/:id/cancel", reservationH.CancelReservation)
			reservations.GET("/:id/qrcode", reservationH.GetReservationQRCode)
			reservations.DELETE("/:id", reservationH.DeleteReservation)
		}
	}

	// 404 处理
	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"success": false,
			"message": "接口不存在",
		})
	})
}

// newSMSSender 根据配置创建短信客户端，未配置阿里云时使用 Mock
func newSMSSender(cfg *config.Config, logger *zap.Logger) sms.Sender {
	if cfg.SMS.Provider != "aliyun" {
		return sms.NewMockSender()
	}

	sender, err := sms.NewAliyunSender(&sms.AliyunConfig{
		AccessKeyID:     cfg.SMS.AccessKeyID,
		AccessKeySecret: cfg.SMS.AccessKeySecret,
		SignName:        cfg.SMS.SignName,
		Templates: map[string]string{
			sms.TemplateReservationConfirmed: cfg.SMS.ConfirmTemplate,
			sms.TemplateReservationCancelled: cfg.SMS.CancelTemplate,
		},
	})
	if err != nil {
		logger.Warn("failed to init aliyun sms client, falling back to mock", zap.Error(err))
		return sms.NewMockSender()
	}
	return sender
}
