// Package domain holds the value types shared across the console core.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// State is a moderation item's lifecycle state. pending/approved/rejected are
// the universal ones; used is a TPIN terminal sub-state; active/blocked belong
// to the account status flow.
type State string

const (
	StatePending  State = "pending"
	StateApproved State = "approved"
	StateRejected State = "rejected"
	StateUsed     State = "used"

	StateActive  State = "active"
	StateBlocked State = "blocked"
)

// Terminal reports whether no further moderation transition exists out of s.
// active/blocked are deliberately not terminal: accounts flip between them.
func (s State) Terminal() bool {
	return s == StateApproved || s == StateRejected || s == StateUsed
}

// Owner identifies the user who submitted a moderation item.
type Owner struct {
	ID    string `json:"userId"`
	Name  string `json:"userName"`
	Email string `json:"userEmail"`
	Code  string `json:"userIdCode,omitempty"`
}

// PaymentPayload carries the entity-specific fields of a payment request.
type PaymentPayload struct {
	PaymentID     string          `json:"paymentId"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Purpose       string          `json:"purpose,omitempty"`
	Method        string          `json:"method,omitempty"`
	ScreenshotURL string          `json:"screenshotUrl,omitempty"`
}

// TpinKind discriminates the two wire shapes the TPIN endpoints return.
// Set at fetch time; nothing downstream sniffs field presence.
type TpinKind string

const (
	TpinKindPending TpinKind = "pending"
	TpinKindHistory TpinKind = "history"
)

type TpinPayload struct {
	Kind           TpinKind   `json:"kind"`
	Code           string     `json:"tpinCode"`
	IsUsed         bool       `json:"isUsed"`
	PurchaseDate   time.Time  `json:"purchaseDate"`
	ActivationDate *time.Time `json:"activationDate,omitempty"`
}

// BankDetails and CryptoWallet are the payout destinations a withdrawal may name.
type BankDetails struct {
	AccountNumber     string `json:"accountNumber"`
	IFSCCode          string `json:"ifscCode"`
	AccountHolderName string `json:"accountHolderName"`
	BankName          string `json:"bankName"`
}

type CryptoWallet struct {
	WalletAddress string `json:"walletAddress"`
	WalletType    string `json:"walletType"`
	Network       string `json:"network"`
}

type PayoutDetails struct {
	BankDetails  *BankDetails  `json:"bankDetails,omitempty"`
	UPIID        string        `json:"upiId,omitempty"`
	CryptoWallet *CryptoWallet `json:"cryptoWallet,omitempty"`
}

type WithdrawalPayload struct {
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"paymentMethod"`
	Details       PayoutDetails   `json:"paymentDetails"`
	TransactionID string          `json:"transactionId,omitempty"`
	ProcessedDate *time.Time      `json:"processedDate,omitempty"`
}

type RechargePayload struct {
	PaymentID     string          `json:"paymentId"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	ScreenshotURL string          `json:"screenshotUrl,omitempty"`
}

// CryptoSide is the direction of a crypto trade request.
type CryptoSide string

const (
	CryptoPurchase CryptoSide = "purchase"
	CryptoSell     CryptoSide = "sell"
)

type CryptoPayload struct {
	Side        CryptoSide      `json:"type"`
	CoinValue   decimal.Decimal `json:"coinValue"`
	Quantity    decimal.Decimal `json:"quantity"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// AccountPayload backs the active/blocked account status flow.
type AccountPayload struct {
	Rank               string `json:"rank,omitempty"`
	TeamSize           int    `json:"teamSize,omitempty"`
	IsActive           bool   `json:"isActive"`
	DeactivationReason string `json:"deactivationReason,omitempty"`
}
