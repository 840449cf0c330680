package services

import (
	"sort"
	"time"

	"github.com/harborview-bistro/menu-analytics-api/models"
	"github.com/montanaflynn/stats"
)

// FilterTransactions restricts the transaction table to the given date
// range, categories and channels. The date range is inclusive on both ends
// and compares order_date only. Empty category/channel sets apply no
// restriction. Row order and content are preserved; a start date after the
// end date yields an empty result rather than an error.
func FilterTransactions(rows []models.Transaction, params models.FilterParams) []models.Transaction {
	filtered := make([]models.Transaction, 0, len(rows))
	if params.StartDate.After(params.EndDate) {
		return filtered
	}

	categories := toSet(params.Categories)
	channels := toSet(params.Channels)

	for _, row := range rows {
		if row.OrderDate.Before(params.StartDate) || row.OrderDate.After(params.EndDate) {
			continue
		}
		if len(categories) > 0 && !categories[row.Category] {
			continue
		}
		if len(channels) > 0 && !channels[row.OrderChannel] {
			continue
		}
		filtered = append(filtered, row)
	}
	return filtered
}

// AggregateByItem groups the filtered rows by item name and computes the
// menu engineering aggregates and classifications. quantity_sold counts
// line-item rows, not units; changing that to sum the quantity column would
// be a deliberate semantics change. The medians are computed across the
// per-item values with linear interpolation for even counts, and items are
// classified against those same medians.
func AggregateByItem(rows []models.Transaction) models.MenuEngineering {
	byItem := make(map[string]*models.ItemAggregate)
	order := make([]string, 0)
	foodCostSums := make(map[string]float64)

	for _, row := range rows {
		agg, ok := byItem[row.ItemName]
		if !ok {
			agg = &models.ItemAggregate{
				ItemName: row.ItemName,
				Category: row.Category, // first category seen wins
			}
			byItem[row.ItemName] = agg
			order = append(order, row.ItemName)
		}
		agg.Revenue += row.TotalRevenue
		agg.Margin += row.ContributionMargin
		agg.QuantitySold++
		foodCostSums[row.ItemName] += row.FoodCostPct
	}

	items := make([]models.ItemAggregate, 0, len(byItem))
	revenues := make([]float64, 0, len(byItem))
	marginsPerUnit := make([]float64, 0, len(byItem))

	for _, name := range order {
		agg := byItem[name]
		// A group always has at least one row, so the division is safe.
		// Waste rows can drive the margin negative; no clamping.
		agg.MarginPerUnit = agg.Margin / float64(agg.QuantitySold)
		agg.AvgFoodCostPct = foodCostSums[name] / float64(agg.QuantitySold)
		revenues = append(revenues, agg.Revenue)
		marginsPerUnit = append(marginsPerUnit, agg.MarginPerUnit)
		items = append(items, *agg)
	}

	medianRevenue := medianOrZero(revenues)
	medianMargin := medianOrZero(marginsPerUnit)

	for i := range items {
		items[i].Classification = models.Classify(items[i].Revenue, items[i].MarginPerUnit, medianRevenue, medianMargin)
	}

	// Highest earners first; name breaks ties so the output is deterministic
	sort.Slice(items, func(i, j int) bool {
		if items[i].Revenue != items[j].Revenue {
			return items[i].Revenue > items[j].Revenue
		}
		return items[i].ItemName < items[j].ItemName
	})

	return models.MenuEngineering{
		Items:               items,
		MedianRevenue:       medianRevenue,
		MedianMarginPerUnit: medianMargin,
	}
}

// ComputeOverview calculates the KPI card values for the filtered rows.
// All ratio computations over an empty or zero-revenue set fall back to 0.
func ComputeOverview(rows []models.Transaction, targetFoodCostPct float64) models.Overview {
	overview := models.Overview{
		TargetFoodCost:  targetFoodCostPct,
		TransactionRows: len(rows),
	}

	orderRevenue := make(map[string]float64)
	for _, row := range rows {
		overview.TotalRevenue += row.TotalRevenue
		overview.TotalFoodCost += row.TotalFoodCost
		if row.IsWaste {
			overview.WasteCost += row.TotalFoodCost
		}
		orderRevenue[row.OrderID] += row.TotalRevenue
	}

	overview.GrossMargin = overview.TotalRevenue - overview.TotalFoodCost
	overview.FoodCostPct = safePct(overview.TotalFoodCost, overview.TotalRevenue)
	overview.WastePctOfCost = safePct(overview.WasteCost, overview.TotalFoodCost)
	overview.OrderCount = len(orderRevenue)

	if len(orderRevenue) > 0 {
		tickets := make([]float64, 0, len(orderRevenue))
		for _, revenue := range orderRevenue {
			tickets = append(tickets, revenue)
		}
		if mean, err := stats.Mean(tickets); err == nil {
			overview.AvgTicket = mean
		}
	}

	switch {
	case overview.FoodCostPct <= targetFoodCostPct:
		overview.FoodCostStatus = models.StatusHealthy
	case overview.FoodCostPct <= targetFoodCostPct+3:
		overview.FoodCostStatus = models.StatusWatch
	default:
		overview.FoodCostStatus = models.StatusCritical
	}

	return overview
}

// DailyRevenueTrend returns per-day revenue and margin sums with trailing
// 7-point moving averages. Days with no rows are absent from the series, and
// the early averages cover only the points available so far instead of
// being zero-padded.
func DailyRevenueTrend(rows []models.Transaction) []models.DailyRevenuePoint {
	type daily struct {
		revenue float64
		margin  float64
	}
	byDate := make(map[time.Time]*daily)
	for _, row := range rows {
		d, ok := byDate[row.OrderDate]
		if !ok {
			d = &daily{}
			byDate[row.OrderDate] = d
		}
		d.revenue += row.TotalRevenue
		d.margin += row.ContributionMargin
	}

	dates := make([]time.Time, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	points := make([]models.DailyRevenuePoint, 0, len(dates))
	var revenueSum, marginSum float64
	for i, date := range dates {
		d := byDate[date]
		revenueSum += d.revenue
		marginSum += d.margin
		if i >= 7 {
			dropped := byDate[dates[i-7]]
			revenueSum -= dropped.revenue
			marginSum -= dropped.margin
		}
		window := float64(min(i+1, 7))
		points = append(points, models.DailyRevenuePoint{
			Date:        date,
			Revenue:     d.revenue,
			Margin:      d.margin,
			Revenue7Day: revenueSum / window,
			Margin7Day:  marginSum / window,
		})
	}
	return points
}

// RevenueByChannel sums revenue per order channel, lowest first
func RevenueByChannel(rows []models.Transaction) []models.ChannelRevenue {
	sums := make(map[string]float64)
	for _, row := range rows {
		sums[row.OrderChannel] += row.TotalRevenue
	}

	result := make([]models.ChannelRevenue, 0, len(sums))
	for channel, revenue := range sums {
		result = append(result, models.ChannelRevenue{Channel: channel, Revenue: revenue})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Revenue != result[j].Revenue {
			return result[i].Revenue < result[j].Revenue
		}
		return result[i].Channel < result[j].Channel
	})
	return result
}

// RevenueByCategory sums revenue per menu category, sorted by category name
func RevenueByCategory(rows []models.Transaction) []models.CategoryRevenue {
	sums := make(map[string]float64)
	for _, row := range rows {
		sums[row.Category] += row.TotalRevenue
	}

	result := make([]models.CategoryRevenue, 0, len(sums))
	for category, revenue := range sums {
		result = append(result, models.CategoryRevenue{Category: category, Revenue: revenue})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Category < result[j].Category })
	return result
}

// CategoryMargins computes revenue, margin and margin percentage per
// category, sorted by margin percentage ascending
func CategoryMargins(rows []models.Transaction) []models.CategoryMargin {
	type sums struct {
		revenue float64
		margin  float64
	}
	byCategory := make(map[string]*sums)
	for _, row := range rows {
		s, ok := byCategory[row.Category]
		if !ok {
			s = &sums{}
			byCategory[row.Category] = s
		}
		s.revenue += row.TotalRevenue
		s.margin += row.ContributionMargin
	}

	result := make([]models.CategoryMargin, 0, len(byCategory))
	for category, s := range byCategory {
		result = append(result, models.CategoryMargin{
			Category:  category,
			Revenue:   s.revenue,
			Margin:    s.margin,
			MarginPct: safePct(s.margin, s.revenue),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].MarginPct != result[j].MarginPct {
			return result[i].MarginPct < result[j].MarginPct
		}
		return result[i].Category < result[j].Category
	})
	return result
}

// ItemFoodCosts returns the mean food cost percentage per item, highest
// first, flagged against the target threshold. limit <= 0 returns all items.
func ItemFoodCosts(rows []models.Transaction, targetFoodCostPct float64, limit int) []models.ItemFoodCost {
	type sums struct {
		foodCostPct float64
		revenue     float64
		count       int
	}
	byItem := make(map[string]*sums)
	for _, row := range rows {
		s, ok := byItem[row.ItemName]
		if !ok {
			s = &sums{}
			byItem[row.ItemName] = s
		}
		s.foodCostPct += row.FoodCostPct
		s.revenue += row.TotalRevenue
		s.count++
	}

	result := make([]models.ItemFoodCost, 0, len(byItem))
	for name, s := range byItem {
		pct := s.foodCostPct / float64(s.count)
		result = append(result, models.ItemFoodCost{
			ItemName:    name,
			FoodCostPct: pct,
			Revenue:     s.revenue,
			OverTarget:  pct > targetFoodCostPct,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].FoodCostPct != result[j].FoodCostPct {
			return result[i].FoodCostPct > result[j].FoodCostPct
		}
		return result[i].ItemName < result[j].ItemName
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// WasteAnalysis computes the waste KPI values over the filtered rows.
// The annualized estimate scales the observed waste cost to 365 days using
// the inclusive length of the filter's date range.
func WasteAnalysis(rows []models.Transaction, startDate, endDate time.Time) models.WasteSummary {
	summary := models.WasteSummary{}
	wasteByItem := make(map[string]float64)
	wasteRows := 0

	for _, row := range rows {
		if !row.IsWaste {
			continue
		}
		wasteRows++
		summary.TotalWasteCost += row.TotalFoodCost
		wasteByItem[row.ItemName] += row.TotalFoodCost
	}

	summary.WasteRatePct = safePct(float64(wasteRows), float64(len(rows)))

	topCost := 0.0
	for name, cost := range wasteByItem {
		if cost > topCost || (cost == topCost && (summary.TopWasteItem == "" || name < summary.TopWasteItem)) {
			topCost = cost
			summary.TopWasteItem = name
		}
	}

	days := int(endDate.Sub(startDate).Hours()/24) + 1
	if days > 0 {
		summary.AnnualizedWasteCost = summary.TotalWasteCost * 365 / float64(days)
	}

	return summary
}

// WasteByItem returns the waste food cost per item, highest first,
// limited to the top limit items (limit <= 0 returns all)
func WasteByItem(rows []models.Transaction, limit int) []models.WasteBucket {
	buckets := wasteBuckets(rows, func(row models.Transaction) string { return row.ItemName })
	sortBucketsByCost(buckets)
	if limit > 0 && len(buckets) > limit {
		buckets = buckets[:limit]
	}
	return buckets
}

// WasteByType returns the waste food cost per waste type, highest first
func WasteByType(rows []models.Transaction) []models.WasteBucket {
	buckets := wasteBuckets(rows, func(row models.Transaction) string {
		if row.WasteType == nil {
			return ""
		}
		return *row.WasteType
	})
	sortBucketsByCost(buckets)
	return buckets
}

// WasteByChannel returns the waste food cost per order channel, highest first
func WasteByChannel(rows []models.Transaction) []models.WasteBucket {
	buckets := wasteBuckets(rows, func(row models.Transaction) string { return row.OrderChannel })
	sortBucketsByCost(buckets)
	return buckets
}

// WasteByMonth returns the waste food cost per calendar month (YYYY-MM),
// in chronological order
func WasteByMonth(rows []models.Transaction) []models.WasteBucket {
	buckets := wasteBuckets(rows, func(row models.Transaction) string {
		return row.OrderDate.Format("2006-01")
	})
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Label < buckets[j].Label })
	return buckets
}

// OrdersHeatmap counts line items per (hour, day-of-week) slot. Slots with
// no rows are absent; cells are ordered by hour, then weekday.
func OrdersHeatmap(rows []models.Transaction) []models.HeatmapCell {
	type slot struct {
		hour int
		day  string
	}
	counts := make(map[slot]int)
	for _, row := range rows {
		counts[slot{hour: row.Hour, day: row.DayOfWeek}]++
	}

	dayRank := make(map[string]int, len(models.WeekdayNames))
	for i, name := range models.WeekdayNames {
		dayRank[name] = i
	}

	cells := make([]models.HeatmapCell, 0, len(counts))
	for s, orders := range counts {
		cells = append(cells, models.HeatmapCell{Hour: s.hour, DayOfWeek: s.day, Orders: orders})
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Hour != cells[j].Hour {
			return cells[i].Hour < cells[j].Hour
		}
		return dayRank[cells[i].DayOfWeek] < dayRank[cells[j].DayOfWeek]
	})
	return cells
}

// RevenueByWeekday sums revenue per day of week in Monday-first order.
// Weekdays with no rows in the filtered set are absent.
func RevenueByWeekday(rows []models.Transaction) []models.WeekdayRevenue {
	sums := make(map[string]float64)
	for _, row := range rows {
		sums[row.DayOfWeek] += row.TotalRevenue
	}

	result := make([]models.WeekdayRevenue, 0, len(sums))
	for _, name := range models.WeekdayNames {
		if revenue, ok := sums[name]; ok {
			result = append(result, models.WeekdayRevenue{DayOfWeek: name, Revenue: revenue})
		}
	}
	return result
}

// RevenueByMonth sums revenue per calendar month (YYYY-MM) in
// chronological order
func RevenueByMonth(rows []models.Transaction) []models.MonthlyRevenue {
	sums := make(map[string]float64)
	for _, row := range rows {
		sums[row.OrderDate.Format("2006-01")] += row.TotalRevenue
	}

	result := make([]models.MonthlyRevenue, 0, len(sums))
	for month, revenue := range sums {
		result = append(result, models.MonthlyRevenue{Month: month, Revenue: revenue})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month < result[j].Month })
	return result
}

// RevenueByHour sums revenue per hour of day in ascending hour order
func RevenueByHour(rows []models.Transaction) []models.HourlyRevenue {
	sums := make(map[int]float64)
	for _, row := range rows {
		sums[row.Hour] += row.TotalRevenue
	}

	result := make([]models.HourlyRevenue, 0, len(sums))
	for hour, revenue := range sums {
		result = append(result, models.HourlyRevenue{Hour: hour, Revenue: revenue})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Hour < result[j].Hour })
	return result
}

// HolidayImpact compares the mean of per-day revenue sums on holidays
// against regular days. A side with no days in the filtered set stays nil;
// the lift percentage is present only when both sides are.
func HolidayImpact(rows []models.Transaction) models.HolidayImpact {
	holidayDays := make(map[time.Time]float64)
	regularDays := make(map[time.Time]float64)
	for _, row := range rows {
		if row.IsHoliday {
			holidayDays[row.OrderDate] += row.TotalRevenue
		} else {
			regularDays[row.OrderDate] += row.TotalRevenue
		}
	}

	impact := models.HolidayImpact{
		RegularAvgDailyRevenue: meanOfDays(regularDays),
		HolidayAvgDailyRevenue: meanOfDays(holidayDays),
	}

	if impact.RegularAvgDailyRevenue != nil && impact.HolidayAvgDailyRevenue != nil && *impact.RegularAvgDailyRevenue != 0 {
		lift := (*impact.HolidayAvgDailyRevenue / *impact.RegularAvgDailyRevenue - 1) * 100
		impact.LiftPct = &lift
	}
	return impact
}

// SelectableItems lists the item names present in the filtered set, sorted.
// The simulator may only be invoked for items from this list.
func SelectableItems(rows []models.Transaction) []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, row := range rows {
		if !seen[row.ItemName] {
			seen[row.ItemName] = true
			names = append(names, row.ItemName)
		}
	}
	sort.Strings(names)
	return names
}

// medianOrZero computes the median with linear interpolation between the
// two middle values for even counts; an empty input yields 0
func medianOrZero(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	median, err := stats.Median(values)
	if err != nil {
		return 0
	}
	return median
}

// safePct returns part/whole*100, or 0 when the denominator is 0
func safePct(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func wasteBuckets(rows []models.Transaction, key func(models.Transaction) string) []models.WasteBucket {
	sums := make(map[string]float64)
	for _, row := range rows {
		if !row.IsWaste {
			continue
		}
		sums[key(row)] += row.TotalFoodCost
	}

	buckets := make([]models.WasteBucket, 0, len(sums))
	for label, cost := range sums {
		buckets = append(buckets, models.WasteBucket{Label: label, Cost: cost})
	}
	return buckets
}

func sortBucketsByCost(buckets []models.WasteBucket) {
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Cost != buckets[j].Cost {
			return buckets[i].Cost > buckets[j].Cost
		}
		return buckets[i].Label < buckets[j].Label
	})
}

// meanOfDays returns the mean of the per-day sums, or nil for no days
func meanOfDays(days map[time.Time]float64) *float64 {
	if len(days) == 0 {
		return nil
	}
	values := make([]float64, 0, len(days))
	for _, v := range days {
		values = append(values, v)
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return nil
	}
	return &mean
}
