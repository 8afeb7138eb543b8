package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Field names in this file are consumed verbatim by the dashboard frontend —
// renaming any of them is a breaking change.

// SellerMetrics are the scalar KPIs for one store.
// Empty result sets resolve every field to 0, never null.
type SellerMetrics struct {
	TotalInvestment      decimal.Decimal `json:"total_investment"`
	TotalSalesValue      decimal.Decimal `json:"total_sales_value"`
	TotalProfit          decimal.Decimal `json:"total_profit"`
	ProfitMargin         decimal.Decimal `json:"profit_margin"`
	StockValue           decimal.Decimal `json:"stock_value"`
	OutOfStockPercentage decimal.Decimal `json:"out_of_stock_percentage"`
}

// TrendPoint is one calendar-day bucket of the sales trend.
//
// The series is sparse by contract: only days with at least one sale event
// are emitted. Consumers must tolerate gaps rather than expect zero-filled
// buckets.
type TrendPoint struct {
	Date           string          `json:"date"` // YYYY-MM-DD
	TotalSales     decimal.Decimal `json:"total_sales"`
	TotalProfit    decimal.Decimal `json:"total_profit"`
	TotalUnitsSold int             `json:"total_units_sold"`
}

// HourlyTrendPoint is the hour-of-day variant of TrendPoint, covering today's
// sales only. Same sparseness contract.
type HourlyTrendPoint struct {
	Hour           int             `json:"hour"` // 0..23
	TotalSales     decimal.Decimal `json:"total_sales"`
	TotalProfit    decimal.Decimal `json:"total_profit"`
	TotalUnitsSold int             `json:"total_units_sold"`
}

// ProductSalesRank is one entry of the best-selling ranking.
type ProductSalesRank struct {
	ProductID         string `json:"product_id"`
	Name              string `json:"name"`
	TotalQuantitySold int    `json:"total_quantity_sold"`
}

// ProductProfitRank is one entry of the most-profitable ranking.
type ProductProfitRank struct {
	ProductID   string          `json:"product_id"`
	Name        string          `json:"name"`
	TotalProfit decimal.Decimal `json:"total_profit"`
}

// CategoryContribution aggregates sales value per category.
type CategoryContribution struct {
	Category        string          `json:"category"`
	TotalSalesValue decimal.Decimal `json:"total_sales_value"`
}

// SalesRankings bundles the three ranking queries.
type SalesRankings struct {
	BestSelling          []ProductSalesRank     `json:"best_selling"`
	MostProfitable       []ProductProfitRank    `json:"most_profitable"`
	CategoryContribution []CategoryContribution `json:"category_contribution"`
}

// InventoryItem classifies one product's stock state.
type InventoryItem struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	StockQuantity int    `json:"stock_quantity"`
	StockStatus   string `json:"stock_status"` // Out of Stock | Low Stock | In Stock
	AgeInDays     int    `json:"age_in_days"`
}

// ProductMargin is one product's margin line.
type ProductMargin struct {
	ProductID     string          `json:"product_id"`
	Name          string          `json:"name"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
}

// ProfitabilityReport covers margin analysis for a store.
// HighestMargin is null when the store has no products.
type ProfitabilityReport struct {
	Products      []ProductMargin `json:"products"`
	HighestMargin *ProductMargin  `json:"highest_margin"`
	NoSales       []ProductMargin `json:"no_sales"`
}

// ProductForecast projects near-term demand for one product.
type ProductForecast struct {
	ProductID           string          `json:"product_id"`
	Name                string          `json:"name"`
	CurrentStock        int             `json:"current_stock"`
	AvgDailySold        decimal.Decimal `json:"avg_daily_sold"`
	RecommendedQuantity int             `json:"recommended_quantity"`
}

// DemandForecast is a trailing-average projection over the forecast horizon.
// It is deliberately naive — no seasonality, no regression — so it lags
// demand spikes and overstates steady decline.
type DemandForecast struct {
	HorizonDays    int               `json:"horizon_days"`
	PredictedSales decimal.Decimal   `json:"predicted_sales"`
	Products       []ProductForecast `json:"products"`
}

// StockAlert is one product flagged by an inventory rule.
type StockAlert struct {
	ProductID     string          `json:"product_id"`
	Name          string          `json:"name"`
	StockQuantity int             `json:"stock_quantity"`
	AgeInDays     int             `json:"age_in_days,omitempty"`
	MarginPercent decimal.Decimal `json:"margin_percent,omitempty"`
}

// InventoryAlerts holds the four independent rule-set outputs. The lists are
// non-exclusive — one product may appear in several of them.
type InventoryAlerts struct {
	LowStock       []StockAlert `json:"low_stock"`
	OutOfStock     []StockAlert `json:"out_of_stock"`
	AgingInventory []StockAlert `json:"aging_inventory"`
	HighMargin     []StockAlert `json:"high_margin"`
}

// ActivityItem is one entry of the merged activity feed.
type ActivityItem struct {
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
}

// DashboardSummary is the combined dashboard payload.
type DashboardSummary struct {
	Metrics      *SellerMetrics   `json:"metrics"`
	WeeklyTrend  []TrendPoint     `json:"weekly_trend"`
	Alerts       *InventoryAlerts `json:"alerts"`
	ActivityFeed []ActivityItem   `json:"activity_feed"`
}
