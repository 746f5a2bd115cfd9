// Package checkout drives the state machine between a filled cart and a
// committed sale: payment selection, debtor capture for credit sales,
// then confirm, ending in Completed or Failed.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rogerio-castellano/pos-tracker/internal/cart"
	"github.com/rogerio-castellano/pos-tracker/internal/models"
	"github.com/rogerio-castellano/pos-tracker/internal/sales"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrMissingDebtorField   = errors.New("missing debtor field")
	ErrNoPaymentMethod      = errors.New("no payment method selected")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrAlreadyCompleted     = errors.New("checkout already completed")
)

type State int

const (
	StateSelectingPayment State = iota
	StateCapturingDebtor
	StateConfirmed
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateSelectingPayment:
		return "selecting_payment"
	case StateCapturingDebtor:
		return "capturing_debtor"
	case StateConfirmed:
		return "confirmed"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Processor is the transaction engine the coordinator hands the confirmed
// sale to.
type Processor interface {
	Process(ctx context.Context, req sales.Request) (sales.Result, error)
}

type Coordinator struct {
	ownerID   int
	cart      *cart.Cart
	processor Processor

	state   State
	payment models.PaymentMethod
	debtor  *models.Debtor
	key     string
}

// New starts a checkout session over the given cart. The cart must be
// non-empty.
func New(ownerID int, c *cart.Cart, processor Processor) (*Coordinator, error) {
	if c.Len() == 0 {
		return nil, ErrEmptyCart
	}
	return &Coordinator{
		ownerID:   ownerID,
		cart:      c,
		processor: processor,
		state:     StateSelectingPayment,
	}, nil
}

func (co *Coordinator) State() State { return co.state }

// UseKey seeds the idempotency key instead of generating one, so a
// client retrying a dropped request replays the original sale. Empty
// keys and already-keyed sessions are left alone.
func (co *Coordinator) UseKey(key string) {
	if co.key == "" && key != "" {
		co.key = key
	}
}

// SelectPayment records the payment method. Choosing credit moves the
// session to debtor capture; choosing anything else moves it back out.
func (co *Coordinator) SelectPayment(m models.PaymentMethod) error {
	if co.state == StateCompleted {
		return ErrAlreadyCompleted
	}
	if !m.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, m)
	}

	co.payment = m
	if m == models.PaymentCredit {
		co.state = StateCapturingDebtor
	} else {
		co.state = StateSelectingPayment
		co.debtor = nil
	}
	return nil
}

// SetDebtor stores the customer details for a credit sale. Validation
// happens at Confirm so the user can fill fields in any order.
func (co *Coordinator) SetDebtor(d models.Debtor) error {
	if co.state != StateCapturingDebtor {
		return fmt.Errorf("debtor details only apply to credit sales")
	}
	co.debtor = &d
	return nil
}

// Confirm validates the session and runs the transaction. On failure the
// session moves to Failed but the cart stays intact, so Confirm may be
// called again; the idempotency key generated on the first attempt is
// reused so a retry can never double-record the sale.
func (co *Coordinator) Confirm(ctx context.Context) (sales.Result, error) {
	if co.state == StateCompleted {
		return sales.Result{}, ErrAlreadyCompleted
	}
	if co.payment == "" {
		return sales.Result{}, ErrNoPaymentMethod
	}
	if co.payment == models.PaymentCredit {
		if err := validateDebtor(co.debtor); err != nil {
			return sales.Result{}, err
		}
	}

	resolved := co.cart.Resolve()
	if len(resolved) == 0 {
		return sales.Result{}, ErrEmptyCart
	}

	if co.key == "" {
		co.key = uuid.NewString()
	}
	co.state = StateConfirmed

	req := sales.Request{
		OwnerID:        co.ownerID,
		IdempotencyKey: co.key,
		PaymentMethod:  co.payment,
		Debtor:         co.debtor,
	}
	for _, item := range resolved {
		req.Items = append(req.Items, sales.LineInput{
			ProductID:   item.Product.ID,
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.Product.Price,
			UnitCost:    item.Product.CostPrice,
		})
	}

	result, err := co.processor.Process(ctx, req)
	if err != nil {
		co.state = StateFailed
		return result, err
	}

	co.state = StateCompleted
	co.cart.Clear()
	return result, nil
}

func validateDebtor(d *models.Debtor) error {
	if d == nil {
		return fmt.Errorf("%w: name, phone, amount owed", ErrMissingDebtorField)
	}
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: name", ErrMissingDebtorField)
	}
	if strings.TrimSpace(d.Phone) == "" {
		return fmt.Errorf("%w: phone", ErrMissingDebtorField)
	}
	if d.AmountOwed <= 0 {
		return fmt.Errorf("%w: amount owed must be positive", ErrMissingDebtorField)
	}
	return nil
}
