// Package utils 通用工具函数单元测试
package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==================== GenerateReservationCode 测试 ====================

func TestGenerateReservationCode(t *testing.T) {
	tests := []string{"R", "RSV", ""}

	for _, prefix := range tests {
		t.Run("prefix_"+prefix, func(t *testing.T) {
			code := GenerateReservationCode(prefix)
			assert.NotEmpty(t, code)
			assert.True(t, strings.HasPrefix(code, prefix))
			// 验证格式：前缀 + 14位时间戳 + 6位随机数 = 前缀长度 + 20
			assert.Equal(t, len(prefix)+20, len(code))
		})
	}
}

func TestGenerateReservationCode_Uniqueness(t *testing.T) {
	prefix := "R"
	iterations := 100
	seen := make(map[string]bool)

	for i := 0; i < iterations; i++ {
		code := GenerateReservationCode(prefix)
		assert.False(t, seen[code], "预订编号应该是唯一的")
		seen[code] = true
	}
}

// ==================== GenerateRandomNumber 测试 ====================

func TestGenerateRandomNumber(t *testing.T) {
	tests := []int{4, 6, 8, 10}

	for _, length := range tests {
		number := GenerateRandomNumber(length)
		assert.Equal(t, length, len(number))
		// 验证全是数字
		for _, c := range number {
			assert.True(t, c >= '0' && c <= '9')
		}
	}
}

func TestGenerateRandomNumber_Uniqueness(t *testing.T) {
	length := 6
	iterations := 100
	seen := make(map[string]bool)

	for i := 0; i < iterations; i++ {
		number := GenerateRandomNumber(length)
		// 由于是随机的，可能会有重复，但概率很低
		seen[number] = true
	}
	// 至少应该生成一些不同的数字
	assert.Greater(t, len(seen), 50)
}

// ==================== ValidateEmail 测试 ====================

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{"Valid simple", "user@example.com", true},
		{"Valid with dot", "user.name@example.com", true},
		{"Valid with plus", "user+tag@example.com", true},
		{"Valid subdomain", "user@mail.example.com", true},
		{"No @ sign", "userexample.com", false},
		{"No domain", "user@", false},
		{"No local part", "@example.com", false},
		{"No TLD", "user@example", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateEmail(tt.email)
			assert.Equal(t, tt.want, result)
		})
	}
}

// ==================== ValidatePhone 测试 ====================

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  bool
	}{
		{"Valid local", "5512345678", true},
		{"Valid international", "+525512345678", true},
		{"Valid short", "1234567", true},
		{"Too short", "123456", false},
		{"Too long", "1234567890123456", false},
		{"Contains letters", "55123456a8", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidatePhone(tt.phone)
			assert.Equal(t, tt.want, result)
		})
	}
}

// ==================== AgeAt 测试 ====================

func TestAgeAt(t *testing.T) {
	at := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		birthDate time.Time
		want      int
	}{
		{"Birthday passed this year", time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), 26},
		{"Birthday today", time.Date(2008, 6, 15, 0, 0, 0, 0, time.UTC), 18},
		{"Birthday tomorrow", time.Date(2008, 6, 16, 0, 0, 0, 0, time.UTC), 17},
		{"Birthday yesterday", time.Date(2008, 6, 14, 0, 0, 0, 0, time.UTC), 18},
		{"Exactly 18 years minus one day", time.Date(2008, 6, 16, 0, 0, 0, 0, time.UTC), 17},
		{"Newborn", time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AgeAt(tt.birthDate, at))
		})
	}
}

func TestAge_Consistency(t *testing.T) {
	// Age 应该与以当前时间调用 AgeAt 一致
	birthDate := time.Date(1990, 3, 20, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, AgeAt(birthDate, time.Now()), Age(birthDate))
}

// ==================== 日期工具测试 ====================

func TestDateOnly(t *testing.T) {
	ts := time.Date(2026, 1, 15, 14, 30, 45, 123, time.UTC)
	d := DateOnly(ts)

	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, time.January, d.Month())
	assert.Equal(t, 15, d.Day())
	assert.Equal(t, 0, d.Hour())
	assert.Equal(t, 0, d.Minute())
	assert.Equal(t, 0, d.Second())
}

func TestNightsBetween(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
	}{
		{
			"One night",
			time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC),
			1,
		},
		{
			"Five nights",
			time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
			5,
		},
		{
			"Across month boundary",
			time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC),
			3,
		},
		{
			"Ignores time of day",
			time.Date(2026, 1, 10, 23, 0, 0, 0, time.UTC),
			time.Date(2026, 1, 11, 1, 0, 0, 0, time.UTC),
			1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NightsBetween(tt.checkIn, tt.checkOut))
		})
	}
}

// ==================== FormatMoney 测试 ====================

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{100, "1.00"},
		{150, "1.50"},
		{1, "0.01"},
		{1234, "12.34"},
		{0, "0.00"},
		{-100, "-1.00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			result := FormatMoney(tt.cents)
			assert.Equal(t, tt.want, result)
		})
	}
}

// ==================== ParseMoney 测试 ====================

func TestParseMoney(t *testing.T) {
	tests := []struct {
		yuan    string
		want    int64
		wantErr bool
	}{
		{"1.00", 100, false},
		{"1.50", 150, false},
		{"0.01", 1, false},
		{"12.34", 1234, false},
		{"0", 0, false},
		{"-1.00", -100, false},
		{"invalid", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.yuan, func(t *testing.T) {
			result, err := ParseMoney(tt.yuan)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, result)
			}
		})
	}
}

func TestFormatParseMoney_RoundTrip(t *testing.T) {
	tests := []int64{100, 150, 1234, 0, -100}

	for _, cents := range tests {
		yuan := FormatMoney(cents)
		parsed, err := ParseMoney(yuan)
		require.NoError(t, err)
		assert.Equal(t, cents, parsed)
	}
}

// ==================== 指针函数测试 ====================

func TestStringPtr(t *testing.T) {
	s := "test"
	ptr := StringPtr(s)
	assert.NotNil(t, ptr)
	assert.Equal(t, s, *ptr)
}

func TestIntPtr(t *testing.T) {
	i := 123
	ptr := IntPtr(i)
	assert.NotNil(t, ptr)
	assert.Equal(t, i, *ptr)
}

func TestInt64Ptr(t *testing.T) {
	i := int64(12345)
	ptr := Int64Ptr(i)
	assert.NotNil(t, ptr)
	assert.Equal(t, i, *ptr)
}

func TestBoolPtr(t *testing.T) {
	ptr := BoolPtr(true)
	assert.NotNil(t, ptr)
	assert.True(t, *ptr)
}

func TestTimePtr(t *testing.T) {
	now := time.Now()
	ptr := TimePtr(now)
	assert.NotNil(t, ptr)
	assert.Equal(t, now, *ptr)
}

// ==================== 安全取值函数测试 ====================

func TestSafeString(t *testing.T) {
	s := "test"
	assert.Equal(t, s, SafeString(&s))
	assert.Equal(t, "", SafeString(nil))
}

func TestSafeInt(t *testing.T) {
	i := 123
	assert.Equal(t, i, SafeInt(&i))
	assert.Equal(t, 0, SafeInt(nil))
}

func TestSafeInt64(t *testing.T) {
	i := int64(12345)
	assert.Equal(t, i, SafeInt64(&i))
	assert.Equal(t, int64(0), SafeInt64(nil))
}

// ==================== 泛型函数测试 ====================

func TestContains(t *testing.T) {
	t.Run("String slice", func(t *testing.T) {
		slice := []string{"a", "b", "c"}
		assert.True(t, Contains(slice, "a"))
		assert.True(t, Contains(slice, "b"))
		assert.False(t, Contains(slice, "d"))
	})

	t.Run("Int slice", func(t *testing.T) {
		slice := []int{1, 2, 3}
		assert.True(t, Contains(slice, 1))
		assert.False(t, Contains(slice, 4))
	})

	t.Run("Empty slice", func(t *testing.T) {
		slice := []string{}
		assert.False(t, Contains(slice, "a"))
	})
}

func TestUnique(t *testing.T) {
	t.Run("String slice", func(t *testing.T) {
		slice := []string{"a", "b", "a", "c", "b"}
		result := Unique(slice)
		assert.Len(t, result, 3)
		assert.ElementsMatch(t, []string{"a", "b", "c"}, result)
	})

	t.Run("Int slice", func(t *testing.T) {
		slice := []int{1, 2, 1, 3, 2, 4}
		result := Unique(slice)
		assert.Len(t, result, 4)
		assert.ElementsMatch(t, []int{1, 2, 3, 4}, result)
	})

	t.Run("Empty slice", func(t *testing.T) {
		slice := []string{}
		result := Unique(slice)
		assert.Empty(t, result)
	})

	t.Run("No duplicates", func(t *testing.T) {
		slice := []int{1, 2, 3}
		result := Unique(slice)
		assert.Equal(t, slice, result)
	})
}

func TestMax(t *testing.T) {
	assert.Equal(t, 5, Max(5, 3))
	assert.Equal(t, 5, Max(3, 5))
	assert.Equal(t, 5, Max(5, 5))
	assert.Equal(t, int64(100), Max(int64(100), int64(50)))
	assert.Equal(t, 10.5, Max(10.5, 8.2))
}

func TestMin(t *testing.T) {
	assert.Equal(t, 3, Min(5, 3))
	assert.Equal(t, 3, Min(3, 5))
	assert.Equal(t, 5, Min(5, 5))
	assert.Equal(t, int64(50), Min(int64(100), int64(50)))
	assert.Equal(t, 8.2, Min(10.5, 8.2))
}

// ==================== Pagination 测试 ====================

func TestPagination_GetOffset(t *testing.T) {
	tests := []struct {
		page     int
		pageSize int
		want     int
	}{
		{1, 10, 0},
		{2, 10, 10},
		{3, 10, 20},
		{1, 20, 0},
		{5, 15, 60},
	}

	for _, tt := range tests {
		p := &Pagination{Page: tt.page, PageSize: tt.pageSize}
		assert.Equal(t, tt.want, p.GetOffset())
	}
}

func TestPagination_GetLimit(t *testing.T) {
	p := &Pagination{PageSize: 20}
	assert.Equal(t, 20, p.GetLimit())
}

func TestPagination_Normalize(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		expectedPage int
		expectedSize int
	}{
		{"Normal", 2, 20, 2, 20},
		{"Page too small", 0, 20, 1, 20},
		{"Page negative", -1, 20, 1, 20},
		{"PageSize too small", 1, 0, 1, 10},
		{"PageSize too large", 1, 200, 1, 100},
		{"Both invalid", 0, 0, 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Pagination{Page: tt.page, PageSize: tt.pageSize}
			p.Normalize()
			assert.Equal(t, tt.expectedPage, p.Page)
			assert.Equal(t, tt.expectedSize, p.PageSize)
		})
	}
}

func TestPagination_GetTotalPages(t *testing.T) {
	tests := []struct {
		total    int64
		pageSize int
		want     int
	}{
		{100, 10, 10},
		{95, 10, 10}, // 向上取整
		{91, 10, 10}, // 向上取整
		{0, 10, 0},
		{5, 10, 1},
		{100, 20, 5},
	}

	for _, tt := range tests {
		p := &Pagination{Total: tt.total, PageSize: tt.pageSize}
		assert.Equal(t, tt.want, p.GetTotalPages())
	}
}

// ==================== 性能测试 ====================

func BenchmarkGenerateReservationCode(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = GenerateReservationCode("R")
	}
}

func BenchmarkGenerateRandomNumber(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = GenerateRandomNumber(6)
	}
}

func BenchmarkValidateEmail(b *testing.B) {
	email := "user@example.com"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ValidateEmail(email)
	}
}
