// Package payment определяет провайдера оплаты подписки на план.
//
// Боевой интеграции с платёжным шлюзом нет: оплата симулируется и всегда
// успешна. Провайдер вынесен в интерфейс, чтобы сервис подписок не зависел
// от захардкоженного успеха и путь отказа оплаты был проверяемым.
package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrPaymentFailed возвращается, когда провайдер отклонил списание.
var ErrPaymentFailed = errors.New("payment failed")

// Receipt — результат успешного списания.
type Receipt struct {
	Success        bool    `json:"success"`
	TransactionID  string  `json:"transactionId"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	IdempotenceKey string  `json:"-"`
}

// Provider описывает способность списать оплату за план.
type Provider interface {
	Charge(ctx context.Context, userUID, planUID string, amount float64) (*Receipt, error)
}

// Simulator — провайдер по умолчанию: списание всегда успешно.
// Формат идентификатора транзакции сохранён из исходного контракта.
type Simulator struct{}

// NewSimulator создаёт симулятор оплаты.
func NewSimulator() *Simulator {
	return &Simulator{}
}

// Charge симулирует успешное списание.
func (s *Simulator) Charge(_ context.Context, _, _ string, amount float64) (*Receipt, error) {
	return &Receipt{
		Success:        true,
		TransactionID:  fmt.Sprintf("TXN%d", time.Now().UnixMilli()),
		Amount:         amount,
		Currency:       "USD",
		IdempotenceKey: uuid.New().String(),
	}, nil
}
