package middleware

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type amountRequest struct {
	Amount  decimal.Decimal  `json:"amount" binding:"decimal_positive"`
	Charges decimal.Decimal  `json:"charges" binding:"decimal_nonneg"`
	Refund  *decimal.Decimal `json:"refund" binding:"omitempty,decimal_positive"`
}

func TestSetupValidator_DecimalTags(t *testing.T) {
	SetupValidator()
	SetupValidator()

	negative := decimal.NewFromInt(-1)
	tests := []struct {
		name    string
		req     amountRequest
		wantErr bool
	}{
		{"valid", amountRequest{Amount: decimal.NewFromInt(5)}, false},
		{"zero amount", amountRequest{Amount: decimal.Zero}, true},
		{"negative charges", amountRequest{Amount: decimal.NewFromInt(5), Charges: negative}, true},
		{"negative refund", amountRequest{Amount: decimal.NewFromInt(5), Refund: &negative}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
