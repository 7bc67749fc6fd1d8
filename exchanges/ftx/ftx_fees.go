package ftx

import (
	"context"
	"fmt"
)

// FeeType is the kind of fee estimate requested
type FeeType uint8

// Fee estimate kinds
const (
	// OfflineTradeFee uses the worst case public fee schedule
	OfflineTradeFee FeeType = iota
	// TradeFee uses the maker and taker rates of the account
	TradeFee
)

const (
	offlineMakerFee = 0.0002
	offlineTakerFee = 0.0007
)

// FeeBuilder describes an order for fee estimation
type FeeBuilder struct {
	FeeType       FeeType
	IsMaker       bool
	PurchasePrice float64
	Amount        float64
}

// GetFee returns an estimate of fee based on type of transaction
func (f *Ftx) GetFee(ctx context.Context, feeBuilder *FeeBuilder) (float64, error) {
	if feeBuilder == nil {
		return 0, errRequestNil
	}
	var fee float64
	switch feeBuilder.FeeType {
	case OfflineTradeFee:
		fee = getOfflineTradeFee(feeBuilder)
	case TradeFee:
		feeData, err := f.GetAccountInfo(ctx)
		if err != nil {
			return 0, err
		}
		if feeBuilder.IsMaker {
			fee = feeData.MakerFee * feeBuilder.Amount * feeBuilder.PurchasePrice
		} else {
			fee = feeData.TakerFee * feeBuilder.Amount * feeBuilder.PurchasePrice
		}
	default:
		return 0, fmt.Errorf("%w: fee type %d", ErrInvalidArgument, feeBuilder.FeeType)
	}
	if fee < 0 {
		fee = 0
	}
	return fee, nil
}

// getOfflineTradeFee calculates the worst case-scenario trading fee
func getOfflineTradeFee(feeBuilder *FeeBuilder) float64 {
	if feeBuilder.IsMaker {
		return offlineMakerFee * feeBuilder.PurchasePrice * feeBuilder.Amount
	}
	return offlineTakerFee * feeBuilder.PurchasePrice * feeBuilder.Amount
}
