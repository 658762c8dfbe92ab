package orderControllers

import (
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const defaultPageSize = 10

var orderSortColumns = map[string]string{
	"created_at": "created_at",
	"total":      "total",
	"name":       "name",
	"status":     "status",
}

func positiveQuery(c *gin.Context, key string, fallback int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + key})
		return 0, false
	}
	return n, true
}

// GET /admin/orders?search=&status=&date=YYYY-MM-DD&sort=created_at&order=desc&page=1&page_size=10
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Order{})

		if raw := strings.TrimSpace(c.Query("status")); raw != "" && !strings.EqualFold(raw, "all") {
			status, err := models.ParseOrderStatus(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			query = query.Where("status = ?", status)
		}

		if search := strings.ToLower(strings.TrimSpace(c.Query("search"))); search != "" {
			like := "%" + search + "%"
			query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
		}

		if raw := c.Query("date"); raw != "" {
			day, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
				return
			}
			query = query.Where("created_at >= ? AND created_at < ?", day, day.AddDate(0, 0, 1))
		}

		column, ok := orderSortColumns[c.DefaultQuery("sort", "created_at")]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sort option"})
			return
		}
		direction := "DESC"
		if strings.EqualFold(c.Query("order"), "asc") {
			direction = "ASC"
		}

		page, ok := positiveQuery(c, "page", 1)
		if !ok {
			return
		}
		pageSize, ok := positiveQuery(c, "page_size", defaultPageSize)
		if !ok {
			return
		}

		query = query.Session(&gorm.Session{})

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		orders := []models.Order{}
		if err := query.Preload("Items").
			Order(column + " " + direction).
			Order("id " + direction).
			Limit(pageSize).
			Offset((page - 1) * pageSize).
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orders":      orders,
			"total":       total,
			"page":        page,
			"page_size":   pageSize,
			"total_pages": int(math.Ceil(float64(total) / float64(pageSize))),
		})
	}
}

type DailyRevenue struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type DashboardStats struct {
	TotalOrders   int64                        `json:"total_orders"`
	StatusCounts  map[models.OrderStatus]int64 `json:"status_counts"`
	Revenue       float64                      `json:"revenue"`
	RevenueByDate []DailyRevenue               `json:"revenue_by_date"`
}

// Dashboard counts orders per status and sums revenue per calendar day (UTC).
func Dashboard(db *gorm.DB) (DashboardStats, error) {
	stats := DashboardStats{StatusCounts: make(map[models.OrderStatus]int64, len(models.OrderStatuses))}
	for _, s := range models.OrderStatuses {
		stats.StatusCounts[s] = 0
	}

	var grouped []struct {
		Status models.OrderStatus
		Count  int64
	}
	if err := db.Model(&models.Order{}).Select("status, COUNT(*) AS count").Group("status").Scan(&grouped).Error; err != nil {
		return DashboardStats{}, err
	}
	for _, g := range grouped {
		stats.StatusCounts[g.Status] = g.Count
		stats.TotalOrders += g.Count
	}

	// totals are summed in Go so the day bucketing works the same on every driver
	var rows []struct {
		Total     float64
		CreatedAt time.Time
	}
	if err := db.Model(&models.Order{}).Select("total, created_at").Scan(&rows).Error; err != nil {
		return DashboardStats{}, err
	}

	revenue := decimal.Zero
	byDay := make(map[string]*DailyRevenue)
	sums := make(map[string]decimal.Decimal)
	for _, r := range rows {
		amount := decimal.NewFromFloat(r.Total)
		revenue = revenue.Add(amount)

		day := r.CreatedAt.UTC().Format("2006-01-02")
		if byDay[day] == nil {
			byDay[day] = &DailyRevenue{Date: day}
		}
		byDay[day].Orders++
		sums[day] = sums[day].Add(amount)
	}

	stats.Revenue = revenue.Round(2).InexactFloat64()
	stats.RevenueByDate = make([]DailyRevenue, 0, len(byDay))
	for day, d := range byDay {
		d.Revenue = sums[day].Round(2).InexactFloat64()
		stats.RevenueByDate = append(stats.RevenueByDate, *d)
	}
	sort.Slice(stats.RevenueByDate, func(i, j int) bool {
		return stats.RevenueByDate[i].Date < stats.RevenueByDate[j].Date
	})
	return stats, nil
}

// GET /admin/dashboard
func DashboardHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := Dashboard(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}
