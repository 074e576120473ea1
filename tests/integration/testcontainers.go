//go:build integration

// Package integration 提供基于 testcontainers-go 的集成测试环境
package integration

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dumeirei/hotel-reservation-backend/internal/models"
)

// PostgresEnv 管理 Postgres 测试容器
type PostgresEnv struct {
	Container *tcPostgres.PostgresContainer
	DSN       string
}

// StartPostgres 启动 Postgres 容器并返回连接信息
func StartPostgres(ctx context.Context) (*PostgresEnv, error) {
	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase("test_hotel_reservation"),
		tcPostgres.WithUsername("test_user"),
		tcPostgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2*time.Minute),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("启动 Postgres 容器失败: %w", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("获取连接串失败: %w", err)
	}

	return &PostgresEnv{Container: container, DSN: dsn}, nil
}

// Terminate 销毁容器
func (e *PostgresEnv) Terminate(ctx context.Context) error {
	if e.Container == nil {
		return nil
	}
	return e.Container.Terminate(ctx)
}

// OpenDatabase 连接容器内数据库并迁移表结构
func (e *PostgresEnv) OpenDatabase() (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(e.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Hotel{},
		&models.Room{},
		&models.Guest{},
		&models.Reservation{},
		&models.ReservationGuest{},
		&models.OperationLog{},
	); err != nil {
		return nil, fmt.Errorf("迁移表结构失败: %w", err)
	}
	return db, nil
}
