package service

import (
	"fmt"
	"sort"

	"github.com/dafibh/fintrack/fintrack-backend/internal/domain"
	"github.com/dafibh/fintrack/fintrack-backend/internal/util"
	"github.com/shopspring/decimal"
)

// ComputeMonthlySummary groups transactions by the YYYY-MM of their date and
// sums income and expenses separately. The result is ordered by month ascending.
// A single unparseable date fails the whole computation with ErrDataIntegrity.
func ComputeMonthlySummary(transactions []*domain.Transaction) ([]domain.MonthlyData, error) {
	byMonth := make(map[string]*domain.MonthlyData)

	for _, t := range transactions {
		month, err := monthOf(t)
		if err != nil {
			return nil, err
		}

		data, ok := byMonth[month]
		if !ok {
			data = &domain.MonthlyData{
				Month:    month,
				Income:   decimal.Zero,
				Expenses: decimal.Zero,
			}
			byMonth[month] = data
		}

		switch t.Type {
		case domain.TransactionTypeIncome:
			data.Income = data.Income.Add(t.Amount)
		case domain.TransactionTypeExpense:
			data.Expenses = data.Expenses.Add(t.Amount)
		default:
			return nil, fmt.Errorf("%w: transaction %s has unknown type %q", domain.ErrDataIntegrity, t.ID, t.Type)
		}
	}

	result := make([]domain.MonthlyData, 0, len(byMonth))
	for _, data := range byMonth {
		data.Net = data.Income.Sub(data.Expenses)
		result = append(result, *data)
	}
	// YYYY-MM sorts chronologically as a string
	sort.Slice(result, func(i, j int) bool {
		return result[i].Month < result[j].Month
	})

	return result, nil
}

// ComputeCategorySummary sums and counts expense transactions per category,
// ordered by amount descending and category name ascending on ties.
func ComputeCategorySummary(transactions []*domain.Transaction) ([]domain.CategorySummary, error) {
	byCategory := make(map[string]*domain.CategorySummary)

	for _, t := range transactions {
		if _, err := monthOf(t); err != nil {
			return nil, err
		}
		if t.Type != domain.TransactionTypeExpense {
			continue
		}

		summary, ok := byCategory[t.Category]
		if !ok {
			summary = &domain.CategorySummary{Category: t.Category, Amount: decimal.Zero}
			byCategory[t.Category] = summary
		}
		summary.Amount = summary.Amount.Add(t.Amount)
		summary.Count++
	}

	result := make([]domain.CategorySummary, 0, len(byCategory))
	for _, summary := range byCategory {
		result = append(result, *summary)
	}
	sort.Slice(result, func(i, j int) bool {
		if cmp := result[i].Amount.Cmp(result[j].Amount); cmp != 0 {
			return cmp > 0
		}
		return result[i].Category < result[j].Category
	})

	return result, nil
}

// FilterByMonth returns the transactions dated within month (YYYY-MM)
func FilterByMonth(transactions []*domain.Transaction, month string) ([]*domain.Transaction, error) {
	filtered := make([]*domain.Transaction, 0, len(transactions))
	for _, t := range transactions {
		m, err := monthOf(t)
		if err != nil {
			return nil, err
		}
		if m == month {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

func monthOf(t *domain.Transaction) (string, error) {
	month, err := util.MonthOfDate(t.Date)
	if err != nil {
		return "", fmt.Errorf("%w: transaction %s has unparseable date %q", domain.ErrDataIntegrity, t.ID, t.Date)
	}
	return month, nil
}
