package dto

import "time"

// AsOfParams selects a point-in-time report. A missing date means today.
type AsOfParams struct {
	AsOf *time.Time `form:"asOf" time_format:"2006-01-02" time_utc:"1"`
}

// PeriodParams selects a period report. A missing from means the start of the current year,
// a missing to means today.
type PeriodParams struct {
	From *time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To   *time.Time `form:"to" time_format:"2006-01-02" time_utc:"1"`
}

// CashbookParams selects the account and period of a cashbook.
type CashbookParams struct {
	AccountID string     `form:"accountID" binding:"required"`
	From      *time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To        *time.Time `form:"to" time_format:"2006-01-02" time_utc:"1"`
}
