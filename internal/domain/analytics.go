package domain

import "github.com/shopspring/decimal"

// MonthlyData is the income/expense aggregate of one calendar month (YYYY-MM)
type MonthlyData struct {
	Month    string          `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// CategorySummary is the aggregated spend of one expense category
type CategorySummary struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Count    int             `json:"count"`
}

// Analytics is the dashboard payload: the monthly trend and the category breakdown
type Analytics struct {
	MonthlyData  []MonthlyData     `json:"monthlyData"`
	CategoryData []CategorySummary `json:"categoryData"`
}

// SpendingTrend compares expenses of the last two months with data.
// PercentChange is nil when the previous month had no expenses.
type SpendingTrend struct {
	CurrentMonth  string           `json:"currentMonth"`
	PreviousMonth string           `json:"previousMonth"`
	Change        decimal.Decimal  `json:"change"`
	PercentChange *decimal.Decimal `json:"percentChange"`
	IsIncrease    bool             `json:"isIncrease"`
}

// TopCategory is the highest spending category with its share of total spend
type TopCategory struct {
	CategorySummary
	ShareOfTotal decimal.Decimal `json:"shareOfTotal"`
}

type RecommendationKind string

const (
	RecommendationSpendingIncrease       RecommendationKind = "spending_increase"
	RecommendationBudgetsOnTrack         RecommendationKind = "budgets_on_track"
	RecommendationHighAverageTransaction RecommendationKind = "high_average_transaction"
)

type Recommendation struct {
	Kind    RecommendationKind `json:"kind"`
	Title   string             `json:"title"`
	Message string             `json:"message"`
}

// Insights is the full insight report for a month
type Insights struct {
	Month                   string            `json:"month"`
	SpendingTrend           *SpendingTrend    `json:"spendingTrend"`
	TopCategory             *TopCategory      `json:"topCategory"`
	AverageTransactionValue decimal.Decimal   `json:"averageTransactionValue"`
	BudgetAlerts            []*BudgetProgress `json:"budgetAlerts"`
	BudgetCount             int               `json:"budgetCount"`
	Recommendations         []Recommendation  `json:"recommendations"`
}
