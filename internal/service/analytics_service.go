package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"sellerhub/internal/dto"
	"sellerhub/internal/model"
	"sellerhub/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Analytics thresholds. Low-stock is exclusive on both ends (0 < q < 5);
// quantity 0 is its own bucket.
const (
	defaultTrendDays     = 30
	weeklyTrendDays      = 7
	defaultHorizonDays   = 30
	lowStockThreshold    = 5
	agingThresholdDays   = 30
	rankingSize          = 5
	feedReviewLimit      = 10
	planExpiryNoticeDays = 7
)

var (
	hundred         = decimal.NewFromInt(100)
	highMarginFloor = decimal.NewFromInt(40)
)

// Stock status labels — a pure function of stock quantity.
const (
	StatusOutOfStock = "Out of Stock"
	StatusLowStock   = "Low Stock"
	StatusInStock    = "In Stock"
)

// AnalyticsService derives KPIs, trends, rankings, classifications, forecasts,
// alerts, and the activity feed for one store. Every method is a pure
// read/derive function over the current catalog and sale history: nothing is
// persisted, and results are recomputed per call.
type AnalyticsService interface {
	Metrics(ctx context.Context, storeID uuid.UUID, from, to *time.Time) (*dto.SellerMetrics, error)
	SalesTrend(ctx context.Context, storeID uuid.UUID, days int) ([]dto.TrendPoint, error)
	HourlySalesTrend(ctx context.Context, storeID uuid.UUID) ([]dto.HourlyTrendPoint, error)
	Rankings(ctx context.Context, storeID uuid.UUID) (*dto.SalesRankings, error)
	InventoryReport(ctx context.Context, storeID uuid.UUID) ([]dto.InventoryItem, error)
	Profitability(ctx context.Context, storeID uuid.UUID) (*dto.ProfitabilityReport, error)
	Forecast(ctx context.Context, storeID uuid.UUID, horizonDays int) (*dto.DemandForecast, error)
	Alerts(ctx context.Context, storeID uuid.UUID) (*dto.InventoryAlerts, error)
	ActivityFeed(ctx context.Context, storeID uuid.UUID) ([]dto.ActivityItem, error)
	Dashboard(ctx context.Context, storeID uuid.UUID) (*dto.DashboardSummary, error)
}

type analyticsService struct {
	stores   repository.StoreRepository
	products repository.ProductRepository
	sales    repository.SaleRepository
	reviews  repository.ReviewRepository
}

func NewAnalyticsService(
	stores repository.StoreRepository,
	products repository.ProductRepository,
	sales repository.SaleRepository,
	reviews repository.ReviewRepository,
) AnalyticsService {
	return &analyticsService{stores: stores, products: products, sales: sales, reviews: reviews}
}

// MarginPercent returns profit as a percentage of sale price, rounded to two
// decimals. Margin is undefined when the sale price is zero or negative and
// resolves to 0 — it never errors. This is the single margin formula shared
// by rankings, profitability, and alerts.
func MarginPercent(purchase, sold decimal.Decimal) decimal.Decimal {
	if !sold.IsPositive() {
		return decimal.Zero
	}
	return sold.Sub(purchase).Div(sold).Mul(hundred).Round(2)
}

// StockStatus maps a stock quantity to exactly one of the three labels.
func StockStatus(quantity int) string {
	switch {
	case quantity <= 0:
		return StatusOutOfStock
	case quantity < lowStockThreshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

func ageInDays(createdAt, now time.Time) int {
	days := int(now.Sub(createdAt).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// resolveStore distinguishes "no such tenant" from upstream failure. Every
// analytics operation short-circuits here before touching sale or catalog
// data, so a missing store never degrades into null aggregates.
func (s *analyticsService) resolveStore(ctx context.Context, storeID uuid.UUID) (*model.Store, error) {
	st, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("analytics: resolve store: %w", err)
	}
	return st, nil
}

// sortedByID returns the catalog in ascending id order so that every derived
// list and tie-break below is deterministic regardless of row return order.
func sortedByID(products []model.Product) []model.Product {
	out := make([]model.Product, len(products))
	copy(out, products)
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out
}

// ── Metrics ──────────────────────────────────────────────────────────────────

// Metrics computes the scalar KPIs. Without an explicit window, investment
// covers unrestricted sale history while sales/profit cover the trailing 30
// days; an explicit window bounds all three. Stock fields always cover the
// whole catalog. Empty inputs resolve every field to 0.
func (s *analyticsService) Metrics(ctx context.Context, storeID uuid.UUID, from, to *time.Time) (*dto.SellerMetrics, error) {
	if _, err := s.resolveStore(ctx, storeID); err != nil {
		return nil, err
	}

	products, err := s.products.ListByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("analytics: list products: %w", err)
	}

	var investmentSales, windowSales []model.Sale
	if from == nil && to == nil {
		all, err := s.sales.ListByStore(ctx, storeID, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("analytics: list sales: %w", err)
		}
		investmentSales = all
		cutoff := startOfDay(time.Now().AddDate(0, 0, -defaultTrendDays))
		for _, sale := range all {
			if !sale.SaleDate.Before(cutoff) {
				windowSales = append(windowSales, sale)
			}
		}
	} else {
		sales, err := s.sales.ListByStore(ctx, storeID, from, to)
		if err != nil {
			return nil, fmt.Errorf("analytics: list sales: %w", err)
		}
		investmentSales, windowSales = sales, sales
	}

	m := &dto.SellerMetrics{
		TotalInvestment:      decimal.Zero,
		TotalSalesValue:      decimal.Zero,
		TotalProfit:          decimal.Zero,
		ProfitMargin:         decimal.Zero,
		StockValue:           decimal.Zero,
		OutOfStockPercentage: decimal.Zero,
	}

	// total_amount − profit ≡ purchase_price_at_sale × quantity, so the
	// investment sum needs no catalog lookup and survives later price edits.
	for _, sale := range investmentSales {
		m.TotalInvestment = m.TotalInvestment.Add(sale.TotalAmount.Sub(sale.Profit))
	}
	for _, sale := range windowSales {
		m.TotalSalesValue = m.TotalSalesValue.Add(sale.TotalAmount)
		m.TotalProfit = m.TotalProfit.Add(sale.Profit)
	}
	if m.TotalSalesValue.IsPositive() {
		m.ProfitMargin = m.TotalProfit.Div(m.TotalSalesValue).Mul(hundred).Round(2)
	}

	outOfStock := 0
	for _, p := range products {
		m.StockValue = m.StockValue.Add(p.PurchasePrice.Mul(decimal.NewFromInt(int64(p.Quantity))))
		if p.Quantity == 0 {
			outOfStock++
		}
	}
	if len(products) > 0 {
		m.OutOfStockPercentage = decimal.NewFromInt(int64(outOfStock)).
			Div(decimal.NewFromInt(int64(len(products)))).Mul(hundred).Round(2)
	}

	return m, nil
}

// ── Trend ────────────────────────────────────────────────────────────────────

// SalesTrend buckets sale events by calendar day over the trailing window.
// Only days with at least one sale are emitted (sparse by contract),
// ascending by date.
func (s *analyticsService) SalesTrend(ctx context.Context, storeID uuid.UUID, days int) ([]dto.TrendPoint, error) {
	if days <= 0 {
		days = defaultTrendDays
	}
	if _, err := s.resolveStore(ctx, storeID); err != nil {
		return nil, err
	}

	today := startOfDay(time.Now())
	from := today.AddDate(0, 0, -days)
	sales, err := s.sales.ListByStore(ctx, storeID, &from, &today)
	if err != nil {
		return nil, fmt.Errorf("analytics: list sales: %w", err)
	}

	buckets := make(map[string]*dto.TrendPoint)
	for _, sale := range sales {
		key := sale.SaleDate.Format("2006-01-02")
		b, ok := buckets[key]
		if !ok {
			b = &dto.TrendPoint{Date: key, TotalSales: decimal.Zero, TotalProfit: decimal.Zero}
			buckets[key] = b
		}
		b.TotalSales = b.TotalSales.Add(sale.TotalAmount)
		b.TotalProfit = b.TotalProfit.Add(sale.Profit)
		b.TotalUnitsSold += sale.Quantity
	}

	points := make([]dto.TrendPoint, 0, len(buckets))
	for _, b := range buckets {
		points = append(points, *b)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points, nil
}

// HourlySalesTrend is the hour-of-day variant over today's sales.
func (s *analyticsService) HourlySalesTrend(ctx context.Context, storeID uuid.UUID) ([]dto.HourlyTrendPoint, error) {
	if _, err := s.resolveStore(ctx, storeID); err != nil {
		return nil, err
	}

	today := startOfDay(time.Now())
	sales, err := s.sales.ListByStore(ctx, storeID, &today, &today)
	if err != nil {
		return nil, fmt.Errorf("analytics: list sales: %w", err)
	}

	buckets := make(map[int]*dto.HourlyTrendPoint)
	for _, sale := range sales {
		hour := sale.CreatedAt.Hour()
		b, ok := buckets[hour]
		if !ok {
			b = &dto.HourlyTrendPoint{Hour: hour, TotalSales: decimal.Zero, TotalProfit: decimal.Zero}
			buckets[hour] = b
		}
		b.TotalSales = b.TotalSales.Add(sale.TotalAmount)
		b.TotalProfit = b.TotalProfit.Add(sale.Profit)
		b.TotalUnitsSold += sale.Quantity
	}

	points := make([]dto.HourlyTrendPoint, 0, len(buckets))
	for _, b := range buckets {
		points = append(points, *b)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Hour < points[j].Hour })
	return points, nil
}

// ── Rankings ─────────────────────────────────────────────────────────────────

// Rankings orders the catalog by cumulative quantity sold and cumulative
// profit (top 5 each, ties by ascending product id) and aggregates sales
// value per category. Products with no sale rows participate with aggregate 0
// and therefore sort last.
func (s *analyticsService) Rankings(ctx context.Context, storeID uuid.UUID) (*dto.SalesRankings, error) {
	if _, err := s.resolveStore(ctx, storeID); err != nil {
		return nil, err
	}

	products, err := s.products.ListByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("analytics: list products: %w", err)
	}
	sales, err := s.sales.ListByStore(ctx, storeID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("analytics: list sales: %w", err)
	}

	type productAgg struct {
		product model.Product
		qty     int
		profit  decimal.Decimal
	}

	aggByID := make(map[uuid.UUID]*productAgg, len(products))
	ordered := make([]*productAgg, 0, len(products))
	for _, p := range sortedByID(products) {
		a := &productAgg{product: p, profit: decimal.Zero}
		aggByID[p.ID] = a
		ordered = append(ordered, a)
	}

	categoryTotals := make(map[string]decimal.Decimal)
	for _, sale := range sales {
		a, ok := aggByID[sale.ProductID]
		if !ok {
			continue // sale references an archived product
		}
		a.qty += sale.Quantity
		a.profit = a.profit.Add(sale.Profit)

		category := "Uncategorized"
		if a.product.Category != nil && *a.product.Category != "" {
			category = *a.product.Category
		}
		categoryTotals[category] = categoryTotals[category].Add(sale.TotalAmount)
	}

	bySold := make([]*productAgg, len(ordered))
	copy(bySold, ordered)
	sort.SliceStable(bySold, func(i, j int) bool { return bySold[i].qty > bySold[j].qty })

	byProfit := make([]*productAgg, len(ordered))
	copy(byProfit, ordered)
	sort.SliceStable(byProfit, func(i, j int) bool { return byProfit[i].profit.GreaterThan(byProfit[j].profit) })

	out := &dto.SalesRankings{
		BestSelling:          []dto.ProductSalesRank{},
		MostProfitable:       []dto.ProductProfitRank{},
		CategoryContribution: []dto.CategoryContribution{},
	}
	for i, a := range bySold {
		if i == rankingSize {
			break
		}
		out.BestSelling = append(out.BestSelling, dto.ProductSalesRank{
			ProductID:         a.product.ID.String(),
			Name:              a.product.Name,
			TotalQuantitySold: a.qty,
		})
	}
	for i, a := range byProfit {
		if i == rankingSize {
			break
		}
		out.MostProfitable = append(out.MostProfitable, dto.ProductProfitRank{
			ProductID:   a.product.ID.String(),
			Name:        a.product.Name,
			TotalProfit: a.profit,
		})
	}

	for category, total := range categoryTotals {
		out.CategoryContribution = append(out.CategoryContribution, dto.CategoryContribution{
			Category:        category,
			TotalSalesValue: total,
		})
	}
	sort.Slice(out.CategoryContribution, func(i, j int) bool {
		a, b := out.CategoryContribution[i], out.CategoryContribution[j]
		if !a.TotalSalesValue.Equal(b.TotalSalesValue) {
			return a.TotalSalesValue.GreaterThan(b.TotalSalesValue)
		}
		return a.Category < b.Category
	})

	return out, nil
}

// ── Inventory classification ─────────────────────────────────────────────────

// InventoryReport labels each product's stock state and catalog age, lowest
// stock first.
func (s *analyticsService) InventoryReport(ctx context.Context, storeID uuid.UUID) ([]dto.InventoryItem, error) {
	if _, err := s.resolveStore(ctx, storeID); err != nil {
		return nil, err
	}

	products, err := s.products.ListByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("analytics: list products: %w", err)
	}

	now := time.Now()
	items := make([]dto.InventoryItem, 0, len(products))
	for _, p := range sortedByID(products) {
		items = append(items, dto.InventoryItem{
			ProductID:     p.ID.String(),
			Name:          p.Name,
			StockQuantity: p.Quantity,
			StockStatus:   StockStatus(p.Quantity),
			AgeInDays:     ageInDays(p.CreatedAt, now),
		})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].StockQuantity < items[j].StockQuantity })
	return items, nil
}

// ── Profitability ────────────────────────────────────────────────────────────

// Profitability computes per-product margins, flags the single highest-margin
// product (ties by lowest id, null for an empty catalog), and lists products
// with zero lifetime sales.
func (s *analyticsService) Profitability(ctx context.Context, storeID uuid.UUID) (*dto.ProfitabilityReport, error) {
	if _, err := s.resolveStore(ctx, storeID); err != nil {
		return nil, err
	}

	products, err := s.products.ListByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("analytics: list products: %w", err)
	}
	sales, err := s.sales.ListByStore(ctx, storeID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("analytics: list sales: %w", err)
	}

	soldByProduct := make(map[uuid.UUID]int)
	for _, sale := range sales {
		soldByProduct[sale.ProductID] += sale.Quantity
	}

	report := &dto.ProfitabilityReport{
		Products: []dto.ProductMargin{},
		NoSales:  []dto.ProductMargin{},
	}
	for _, p := range sortedByID(products) {
		pm := dto.ProductMargin{
			ProductID:     p.ID.String(),
			Name:          p.Name,
			MarginPercent: MarginPercent(p.PurchasePrice, p.SoldPrice),
		}
		report.Products = append(report.Products, pm)
		if soldByProduct[p.ID] == 0 {
			report.NoSales = append(report.NoSales, pm)
		}
	}

	// Stable sort on an id-ordered slice: the first element of any margin tie
	// is the lowest id.
	sort.SliceStable(report.Products, func(i, j int) bool {
		return report.Products[i].MarginPercent.GreaterThan(report.Products[j].MarginPercent)
	})
	if len(report.Products) > 0 {
		top := report.Products[0]
		report.HighestMargin = &top
	}
	return report, nil
}

// ── Forecast ─────────────────────────────────────────────────────────────────

// Forecast projects demand from the trailing daily average over the horizon
// and recommends restocking the shortfall against current stock, floored at
// zero. A plain trailing average lags spikes and overstates steady decline;
// see dto.DemandForecast.
func (s *analyticsService) Forecast(ctx context.Context, storeID uuid.UUID, horizonDays int) (*dto.DemandForecast, error) {
	if horizonDays <= 0 {
		horizonDays = defaultHorizonDays
	}
	if _, err := s.resolveStore(ctx, storeID); err != nil {
		return nil, err
	}

	products, err := s.products.ListByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("analytics: list products: %w", err)
	}

	today := startOfDay(time.Now())
	from := today.AddDate(0, 0, -horizonDays)
	sales, err := s.sales.ListByStore(ctx, storeID, &from, &today)
	if err != nil {
		return nil, fmt.Errorf("analytics: list sales: %w", err)
	}

	soldByProduct := make(map[uuid.UUID]int)
	for _, sale := range sales {
		soldByProduct[sale.ProductID] += sale.Quantity
	}

	horizon := decimal.NewFromInt(int64(horizonDays))
	forecast := &dto.DemandForecast{
		HorizonDays:    horizonDays,
		PredictedSales: decimal.Zero,
		Products:       []dto.ProductForecast{},
	}
	for _, p := range sortedByID(products) {
		avg := decimal.NewFromInt(int64(soldByProduct[p.ID])).Div(horizon)
		projected := avg.Mul(horizon)
		forecast.PredictedSales = forecast.PredictedSales.Add(projected)

		recommended := projected.Sub(decimal.NewFromInt(int64(p.Quantity))).Round(0).IntPart()
		if recommended < 0 {
			recommended = 0
		}
		forecast.Products = append(forecast.Products, dto.ProductForecast{
			ProductID:           p.ID.String(),
			Name:                p.Name,
			CurrentStock:        p.Quantity,
			AvgDailySold:        avg.Round(2),
			RecommendedQuantity: int(recommended),
		})
	}

	// Most urgent restock first.
	sort.SliceStable(forecast.Products, func(i, j int) bool {
		return forecast.Products[i].RecommendedQuantity > forecast.Products[j].RecommendedQuantity
	})
	forecast.PredictedSales = forecast.PredictedSales.Round(2)
	return forecast, nil
}

// ── Alerts ───────────────────────────────────────────────────────────────────

// Alerts evaluates the four fixed-threshold rule sets. The lists are
// independent and non-exclusive; no severity ranking or dedup is applied.
// Zero-priced products never reach the high-margin list since their margin
// resolves to 0.
func (s *analyticsService) Alerts(ctx context.Context, storeID uuid.UUID) (*dto.InventoryAlerts, error) {
	if _, err := s.resolveStore(ctx, storeID); err != nil {
		return nil, err
	}

	products, err := s.products.ListByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("analytics: list products: %w", err)
	}

	now := time.Now()
	alerts := &dto.InventoryAlerts{
		LowStock:       []dto.StockAlert{},
		OutOfStock:     []dto.StockAlert{},
		AgingInventory: []dto.StockAlert{},
		HighMargin:     []dto.StockAlert{},
	}
	for _, p := range sortedByID(products) {
		age := ageInDays(p.CreatedAt, now)
		margin := MarginPercent(p.PurchasePrice, p.SoldPrice)
		base := dto.StockAlert{ProductID: p.ID.String(), Name: p.Name, StockQuantity: p.Quantity}

		if p.Quantity == 0 {
			alerts.OutOfStock = append(alerts.OutOfStock, base)
		} else if p.Quantity < lowStockThreshold {
			alerts.LowStock = append(alerts.LowStock, base)
		}
		if age > agingThresholdDays {
			aging := base
			aging.AgeInDays = age
			alerts.AgingInventory = append(alerts.AgingInventory, aging)
		}
		if margin.GreaterThanOrEqual(highMarginFloor) {
			high := base
			high.MarginPercent = margin
			alerts.HighMargin = append(alerts.HighMargin, high)
		}
	}
	return alerts, nil
}

// ── Activity feed ────────────────────────────────────────────────────────────

// ActivityFeed merges recent reviews, currently low-stock products, and at
// most one plan-expiry notice (within 7 days) into one list sorted descending
// by date. Ties keep concatenation order (reviews, low stock, expiry) via the
// stable sort — the documented deterministic rule.
func (s *analyticsService) ActivityFeed(ctx context.Context, storeID uuid.UUID) ([]dto.ActivityItem, error) {
	store, err := s.resolveStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviews.ListRecent(ctx, storeID, feedReviewLimit)
	if err != nil {
		return nil, fmt.Errorf("analytics: list reviews: %w", err)
	}
	products, err := s.products.ListByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("analytics: list products: %w", err)
	}

	items := make([]dto.ActivityItem, 0, len(reviews)+len(products)+1)
	for _, r := range reviews {
		items = append(items, dto.ActivityItem{
			Message: fmt.Sprintf("New %d-star review from %s", r.Rating, r.Reviewer),
			Date:    r.CreatedAt,
		})
	}
	for _, p := range sortedByID(products) {
		if p.Quantity > 0 && p.Quantity < lowStockThreshold {
			items = append(items, dto.ActivityItem{
				Message: fmt.Sprintf("Low stock: %s has %d units left", p.Name, p.Quantity),
				Date:    p.UpdatedAt,
			})
		}
	}
	if store.PlanExpiresAt != nil {
		now := time.Now()
		expiry := *store.PlanExpiresAt
		if expiry.After(now) && expiry.Before(now.AddDate(0, 0, planExpiryNoticeDays)) {
			items = append(items, dto.ActivityItem{
				Message: fmt.Sprintf("Your %s plan expires on %s", store.Plan, expiry.Format("2006-01-02")),
				Date:    expiry,
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Date.After(items[j].Date) })
	return items, nil
}

// ── Dashboard ────────────────────────────────────────────────────────────────

// Dashboard composes the summary payload. The four component queries are
// independent read-only computations, so they fan out concurrently; the first
// failure wins and the partial result is discarded.
func (s *analyticsService) Dashboard(ctx context.Context, storeID uuid.UUID) (*dto.DashboardSummary, error) {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		out      dto.DashboardSummary
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}
	run := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				fail(err)
			}
		}()
	}

	run(func() error {
		m, err := s.Metrics(ctx, storeID, nil, nil)
		out.Metrics = m
		return err
	})
	run(func() error {
		t, err := s.SalesTrend(ctx, storeID, weeklyTrendDays)
		out.WeeklyTrend = t
		return err
	})
	run(func() error {
		a, err := s.Alerts(ctx, storeID)
		out.Alerts = a
		return err
	})
	run(func() error {
		f, err := s.ActivityFeed(ctx, storeID)
		out.ActivityFeed = f
		return err
	})

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return &out, nil
}
