// Package metrics 提供 Prometheus 指标收集单元测试
package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestInit(t *testing.T) {
	t.Run("使用默认命名空间", func(t *testing.T) {
		m := Init("")
		require.NotNil(t, m)
		assert.NotNil(t, m.httpRequestsTotal)
		assert.NotNil(t, m.httpRequestDuration)
		assert.NotNil(t, m.httpRequestsInFlight)
		assert.NotNil(t, m.dbQueriesTotal)
		assert.NotNil(t, m.dbQueryDuration)
		assert.NotNil(t, m.cacheHitsTotal)
		assert.NotNil(t, m.cacheMissesTotal)
		assert.NotNil(t, m.reservationsTotal)
		assert.NotNil(t, m.dateConflictsTotal)
		assert.NotNil(t, m.smsMessagesTotal)
		assert.NotNil(t, m.availableRooms)
		assert.NotNil(t, m.activeReservations)
	})

	t.Run("使用自定义命名空间", func(t *testing.T) {
		m := Init("custom_namespace")
		require.NotNil(t, m)
	})
}

func TestGetMetrics(t *testing.T) {
	t.Run("获取已初始化的指标", func(t *testing.T) {
		Init("test")
		m := GetMetrics()
		require.NotNil(t, m)
	})

	t.Run("获取指标实例", func(t *testing.T) {
		// GetMetrics 应该返回非空指标实例
		m := GetMetrics()
		require.NotNil(t, m)
	})
}

func TestMetrics_RecordDBQuery(t *testing.T) {
	m := Init("test_db")

	t.Run("记录SELECT查询", func(t *testing.T) {
		// 不会panic即为成功
		m.RecordDBQuery("SELECT", "hotels", 10*time.Millisecond)
	})

	t.Run("记录INSERT查询", func(t *testing.T) {
		m.RecordDBQuery("INSERT", "reservations", 5*time.Millisecond)
	})

	t.Run("记录UPDATE查询", func(t *testing.T) {
		m.RecordDBQuery("UPDATE", "rooms", 3*time.Millisecond)
	})

	t.Run("记录DELETE查询", func(t *testing.T) {
		m.RecordDBQuery("DELETE", "guests", 2*time.Millisecond)
	})
}

func TestMetrics_RecordCache(t *testing.T) {
	m := Init("test_cache")

	t.Run("记录缓存命中", func(t *testing.T) {
		m.RecordCacheHit("hotel_cache")
		m.RecordCacheHit("availability_cache")
	})

	t.Run("记录缓存未命中", func(t *testing.T) {
		m.RecordCacheMiss("hotel_cache")
		m.RecordCacheMiss("stats_cache")
	})
}

func TestMetrics_RecordReservation(t *testing.T) {
	m := Init("test_reservations")

	t.Run("记录待确认预订", func(t *testing.T) {
		m.RecordReservation("pending")
	})

	t.Run("记录已确认预订", func(t *testing.T) {
		m.RecordReservation("confirmed")
	})

	t.Run("记录已取消预订", func(t *testing.T) {
		m.RecordReservation("cancelled")
	})
}

func TestMetrics_RecordDateConflict(t *testing.T) {
	m := Init("test_conflicts")

	t.Run("记录日期冲突", func(t *testing.T) {
		m.RecordDateConflict()
		m.RecordDateConflict()
	})
}

func TestMetrics_RecordSMSMessage(t *testing.T) {
	m := Init("test_sms")

	t.Run("记录发送成功", func(t *testing.T) {
		m.RecordSMSMessage("aliyun", "success")
	})

	t.Run("记录发送失败", func(t *testing.T) {
		m.RecordSMSMessage("aliyun", "failed")
	})

	t.Run("记录模拟发送", func(t *testing.T) {
		m.RecordSMSMessage("mock", "success")
	})
}

func TestMetrics_SetGauges(t *testing.T) {
	m := Init("test_gauges")

	t.Run("设置可预订房间数", func(t *testing.T) {
		m.SetAvailableRooms(100)
		m.SetAvailableRooms(95)
	})

	t.Run("设置有效预订数", func(t *testing.T) {
		m.SetActiveReservations(500)
		m.SetActiveReservations(600)
	})
}

func TestRecordHTTPRequest(t *testing.T) {
	Init("test_http")

	t.Run("记录HTTP请求", func(t *testing.T) {
		RecordHTTPRequest("GET", "/api/v1/hotels", "200", 100*time.Millisecond)
		RecordHTTPRequest("POST", "/api/v1/reservations", "201", 50*time.Millisecond)
		RecordHTTPRequest("GET", "/api/v1/hotels/1", "404", 10*time.Millisecond)
		RecordHTTPRequest("POST", "/api/v1/guests", "422", 200*time.Millisecond)
	})
}

func TestRecordDBQueryGlobal(t *testing.T) {
	Init("test_global")

	t.Run("全局记录数据库查询", func(t *testing.T) {
		RecordDBQueryGlobal("SELECT", "rooms", 15*time.Millisecond)
	})
}

func TestRecordCacheGlobal(t *testing.T) {
	Init("test_global_cache")

	t.Run("全局记录缓存命中", func(t *testing.T) {
		RecordCacheHitGlobal("room_cache")
	})

	t.Run("全局记录缓存未命中", func(t *testing.T) {
		RecordCacheMissGlobal("room_cache")
	})
}

func TestMetrics_Middleware(t *testing.T) {
	m := Init("test_middleware")

	router := gin.New()
	router.Use(m.Middleware())

	router.GET("/api/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/metrics", func(c *gin.Context) {
		c.String(http.StatusOK, "metrics")
	})

	t.Run("记录请求指标", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/test", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("跳过/metrics端点", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/metrics", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestHandler(t *testing.T) {
	Init("test_handler")

	router := gin.New()
	router.GET("/metrics", Handler())

	t.Run("返回Prometheus指标", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/metrics", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		// Prometheus 指标应该包含一些标准内容
		body := w.Body.String()
		assert.Contains(t, body, "go_") // Go 运行时指标
	})
}
