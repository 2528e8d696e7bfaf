package domain

import "github.com/shopspring/decimal"

// Aggregate figures the dashboard endpoints return. Read-only: the console
// never derives these locally.

type UserStats struct {
	TotalUsers           int `json:"totalUsers"`
	NewUsers             int `json:"newUsers"`
	ActiveSubscriptions  int `json:"activeSubscriptions"`
	ActiveTpins          int `json:"activeTpins"`
	PendingSubscriptions int `json:"pendingSubscriptions"`
	PendingTpins         int `json:"pendingTpins"`
}

type WithdrawalStat struct {
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Count       int             `json:"count"`
}

type FinancialStats struct {
	TotalRevenue         decimal.Decimal `json:"totalRevenue"`
	RevenueInPeriod      decimal.Decimal `json:"revenueInPeriod"`
	TransactionsInPeriod int             `json:"transactionsInPeriod"`
	TotalWithdrawals     struct {
		Pending  WithdrawalStat `json:"pending"`
		Approved WithdrawalStat `json:"approved"`
		Rejected WithdrawalStat `json:"rejected"`
	} `json:"totalWithdrawals"`
}

type RankCount struct {
	Rank  string `json:"_id"`
	Count int    `json:"count"`
}

type MlmStats struct {
	ActiveReferrers       int             `json:"activeReferrers"`
	TotalTeamSize         int             `json:"totalTeamSize"`
	TotalDirectIncome     decimal.Decimal `json:"totalDirectIncome"`
	TotalMatrixIncome     decimal.Decimal `json:"totalMatrixIncome"`
	TotalSelfIncome       decimal.Decimal `json:"totalSelfIncome"`
	TotalRankRewards      decimal.Decimal `json:"totalRankRewards"`
	ActiveTradingPackages int             `json:"activeTradingPackages"`
	RankDistribution      []RankCount     `json:"rankDistribution"`
}

type ChartData struct {
	Labels   []string `json:"labels"`
	Datasets struct {
		NewUsers    []int             `json:"newUsers"`
		Revenue     []decimal.Decimal `json:"revenue"`
		Withdrawals []decimal.Decimal `json:"withdrawals"`
	} `json:"datasets"`
}

type DashboardStats struct {
	UserStats      UserStats      `json:"userStats"`
	FinancialStats FinancialStats `json:"financialStats"`
	MlmStats       MlmStats       `json:"mlmStats"`
	ChartData      ChartData      `json:"chartData"`
}

type MlmOverview struct {
	TotalUsers               int             `json:"totalUsers"`
	ActiveInNetwork          int             `json:"activeInNetwork"`
	TotalEarningsDistributed decimal.Decimal `json:"totalEarningsDistributed"`
	PendingWithdrawals       int             `json:"pendingWithdrawals"`
	TotalWithdrawals         int             `json:"totalWithdrawals"`
	NetworkDepth             int             `json:"networkDepth"`
	DirectCommissionsPaid    decimal.Decimal `json:"directCommissionsPaid"`
	MatrixCommissionsPaid    decimal.Decimal `json:"matrixCommissionsPaid"`
	RankBonusesPaid          decimal.Decimal `json:"rankBonusesPaid"`
}

type TopPerformer struct {
	Rank            string          `json:"rank"`
	UserID          string          `json:"userId"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	TeamSize        int             `json:"teamSize"`
	DirectReferrals int             `json:"directReferrals"`
	TotalEarnings   decimal.Decimal `json:"totalEarnings"`
	IsActive        bool            `json:"isActive"`
	JoinDate        string          `json:"joinDate"`
}

type InvestmentStats struct {
	TotalRecharges   int             `json:"totalRecharges"`
	PendingRecharges int             `json:"pendingRecharges"`
	TotalInvested    decimal.Decimal `json:"totalInvested"`
}
