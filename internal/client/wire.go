package client

import (
	"errors"
	"fmt"
	"math"

	"account-transactions/internal/domain"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	money "google.golang.org/genproto/googleapis/type/money"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	serviceName                  = "transactions.v1.AccountTransactionService"
	getAccountTransactionsMethod = "/" + serviceName + "/GetAccountTransactions"

	authHeader      = "x-internal-key"
	requestIDHeader = "x-request-id"
)

func encodeLookupRequest(req domain.LookupRequest) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(map[string]any{
		"accountNumber":   req.AccountNumber,
		"accountCurrency": string(req.AccountCurrency),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode lookup request: %w", err)
	}
	return s, nil
}

func decodeLookupRequest(s *structpb.Struct) (domain.LookupRequest, error) {
	fields := s.GetFields()
	cur, err := domain.ParseCurrency(fields["accountCurrency"].GetStringValue())
	if err != nil {
		return domain.LookupRequest{}, err
	}
	return domain.LookupRequest{
		AccountNumber:   fields["accountNumber"].GetStringValue(),
		AccountCurrency: cur,
	}, nil
}

func encodeTransactions(txs []domain.Transaction) *structpb.Struct {
	values := make([]*structpb.Value, 0, len(txs))
	for _, tx := range txs {
		amount := toMoney(tx.OriginalAmount, tx.OriginalCurrency)
		values = append(values, structpb.NewStructValue(&structpb.Struct{
			Fields: map[string]*structpb.Value{
				"transactionId":   structpb.NewStringValue(tx.ID),
				"transactionDate": structpb.NewStringValue(tx.Date.String()),
				"transactionType": structpb.NewStringValue(tx.Type),
				"originalAmount": structpb.NewStructValue(&structpb.Struct{
					Fields: map[string]*structpb.Value{
						"currencyCode": structpb.NewStringValue(amount.CurrencyCode),
						"units":        structpb.NewNumberValue(float64(amount.Units)),
						"nanos":        structpb.NewNumberValue(float64(amount.Nanos)),
					},
				}),
				"originalCurrency": structpb.NewStringValue(tx.OriginalCurrency),
				"displayAmount":    structpb.NewStringValue(tx.DisplayAmount),
			},
		}))
	}

	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			"transactions": structpb.NewListValue(&structpb.ListValue{Values: values}),
		},
	}
}

func decodeTransactions(s *structpb.Struct) ([]domain.Transaction, error) {
	values := s.GetFields()["transactions"].GetListValue().GetValues()
	txs := make([]domain.Transaction, 0, len(values))

	for i, v := range values {
		fields := v.GetStructValue().GetFields()
		if fields == nil {
			return nil, fmt.Errorf("transaction %d is not an object", i)
		}

		date, err := civil.ParseDate(fields["transactionDate"].GetStringValue())
		if err != nil {
			return nil, fmt.Errorf("transaction %d: invalid date: %w", i, err)
		}

		amount, err := decodeMoney(fields["originalAmount"].GetStructValue())
		if err != nil {
			return nil, fmt.Errorf("transaction %d: invalid amount: %w", i, err)
		}

		currency := fields["originalCurrency"].GetStringValue()
		if currency == "" {
			currency = amount.CurrencyCode
		}

		txs = append(txs, domain.Transaction{
			ID:               fields["transactionId"].GetStringValue(),
			Date:             date,
			Type:             fields["transactionType"].GetStringValue(),
			OriginalAmount:   fromMoney(amount),
			OriginalCurrency: currency,
			DisplayAmount:    fields["displayAmount"].GetStringValue(),
		})
	}

	return txs, nil
}

// decodeMoney reads a google.type.Money object. Units and nanos must be whole
// numbers, nanos must stay below one unit and both must share a sign.
func decodeMoney(s *structpb.Struct) (*money.Money, error) {
	fields := s.GetFields()
	units, err := wholeNumber(fields["units"].GetNumberValue(), 1<<63)
	if err != nil {
		return nil, fmt.Errorf("units: %w", err)
	}
	nanos, err := wholeNumber(fields["nanos"].GetNumberValue(), 1e9)
	if err != nil {
		return nil, fmt.Errorf("nanos: %w", err)
	}
	if (units > 0 && nanos < 0) || (units < 0 && nanos > 0) {
		return nil, errors.New("units and nanos have different signs")
	}

	return &money.Money{
		CurrencyCode: fields["currencyCode"].GetStringValue(),
		Units:        units,
		Nanos:        int32(nanos),
	}, nil
}

// wholeNumber converts a JSON number to an int64 with |f| < limit.
func wholeNumber(f, limit float64) (int64, error) {
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%v is not a whole number", f)
	}
	if math.Abs(f) >= limit {
		return 0, fmt.Errorf("%v is out of range", f)
	}
	return int64(f), nil
}

// toMoney splits d into whole units and nanos. Both carry the sign of d.
func toMoney(d decimal.Decimal, currency string) *money.Money {
	units := d.IntPart()
	nanos := d.Sub(decimal.NewFromInt(units)).Shift(9).IntPart()
	return &money.Money{
		CurrencyCode: currency,
		Units:        units,
		Nanos:        int32(nanos),
	}
}

func fromMoney(m *money.Money) decimal.Decimal {
	return decimal.New(m.GetUnits(), 0).Add(decimal.New(int64(m.GetNanos()), -9))
}
