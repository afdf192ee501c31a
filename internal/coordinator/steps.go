package coordinator

import (
	"context"
	"errors"
	"fmt"

	"github.com/jcmexdev/storefront/internal/storefront/core/domain/entity"
	"github.com/jcmexdev/storefront/internal/storefront/core/ports"
)

// --- InsertOrderStep ---

type InsertOrderStep struct {
	repo    ports.OrderRepository
	order   *entity.Order
	orderID int64
}

func NewInsertOrderStep(repo ports.OrderRepository, order *entity.Order) *InsertOrderStep {
	return &InsertOrderStep{repo: repo, order: order}
}

func (s *InsertOrderStep) Name() string { return "insert_order" }

func (s *InsertOrderStep) Execute(ctx context.Context) error {
	id, err := s.repo.InsertOrder(ctx, s.order)
	if err != nil {
		return err
	}
	s.orderID = id
	s.order.ID = id
	return nil
}

// Compensate cancels the order. The row stays in place.
func (s *InsertOrderStep) Compensate(ctx context.Context) error {
	if s.orderID == 0 {
		return nil
	}
	return s.repo.UpdateOrderStatus(ctx, s.orderID, entity.StatusCancelled)
}

// OrderID is valid once Execute has succeeded.
func (s *InsertOrderStep) OrderID() int64 { return s.orderID }

// --- InsertOrderLinesStep ---

type InsertOrderLinesStep struct {
	repo  ports.OrderRepository
	order *InsertOrderStep
	lines []entity.OrderLine
}

// NewInsertOrderLinesStep stores lines against the id produced by order.
func NewInsertOrderLinesStep(repo ports.OrderRepository, order *InsertOrderStep, lines []entity.OrderLine) *InsertOrderLinesStep {
	return &InsertOrderLinesStep{repo: repo, order: order, lines: lines}
}

func (s *InsertOrderLinesStep) Name() string { return "insert_order_lines" }

func (s *InsertOrderLinesStep) Execute(ctx context.Context) error {
	id := s.order.OrderID()
	if id == 0 {
		return errors.New("order id not assigned")
	}

	lines := make([]entity.OrderLine, len(s.lines))
	for i, l := range s.lines {
		l.OrderID = id
		lines[i] = l
	}
	if err := s.repo.InsertOrderLines(ctx, lines); err != nil {
		return fmt.Errorf("order %d: %w", id, err)
	}
	return nil
}

// Compensate is a no-op: this is the last step, so it never needs undoing.
func (s *InsertOrderLinesStep) Compensate(context.Context) error { return nil }
