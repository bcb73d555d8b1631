package services

import (
  "context"
  "fmt"
  "net/http"
  "strings"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/simucrowd/simucrowd-backend/internal/platform/apierr"
  "github.com/simucrowd/simucrowd-backend/internal/platform/logger"
  "github.com/simucrowd/simucrowd-backend/internal/repos"
  "github.com/simucrowd/simucrowd-backend/internal/types"
)

type PaymentService interface {
  // ProcessOrder records a completed checkout and moves the user to the
  // purchased plan.
  ProcessOrder(ctx context.Context, userID uuid.UUID, orderID string, plan types.PlanLevel) (*types.User, error)
  ListTransactions(ctx context.Context, userID uuid.UUID) ([]*types.PaymentTransaction, error)
}

type paymentService struct {
  db          *gorm.DB
  log         *logger.Logger
  paymentRepo repos.PaymentRepo
  userService UserService
}

func NewPaymentService(db *gorm.DB, log *logger.Logger, paymentRepo repos.PaymentRepo, userService UserService) PaymentService {
  serviceLog := log.With("service", "PaymentService")
  return &paymentService{
    db:          db,
    log:         serviceLog,
    paymentRepo: paymentRepo,
    userService: userService,
  }
}

func (ps *paymentService) ProcessOrder(ctx context.Context, userID uuid.UUID, orderID string, plan types.PlanLevel) (*types.User, error) {
  orderID = strings.TrimSpace(orderID)
  if orderID == "" {
    return nil, apierr.New(http.StatusBadRequest, apierr.CodeValidation, fmt.Errorf("order id is required"))
  }
  // Checkouts only exist for the paid tiers.
  if plan == types.PlanFree {
    plan = types.PlanPro
  }
  limits, ok := types.PlanLimits[plan]
  if !ok {
    return nil, apierr.New(http.StatusBadRequest, apierr.CodeValidation, fmt.Errorf("unknown plan %q", plan))
  }

  transaction := &types.PaymentTransaction{
    ID:        uuid.New(),
    UserID:    userID,
    OrderID:   orderID,
    PlanID:    plan,
    AmountUSD: limits.PriceUSD,
    Currency:  "USD",
    Status:    types.PaymentCompleted,
  }
  if _, err := ps.paymentRepo.Create(ctx, nil, transaction); err != nil {
    return nil, fmt.Errorf("failed to record payment: %w", err)
  }

  user, err := ps.userService.ApplyPlan(ctx, userID, plan)
  if err != nil {
    // The money moved but the plan did not; this needs a human.
    ps.log.Error("payment recorded but plan change failed", "orderID", orderID, "userID", userID, "error", err)
    return nil, err
  }

  ps.log.Info("processed order", "orderID", orderID, "plan", plan, "amountUSD", limits.PriceUSD)
  return user, nil
}

func (ps *paymentService) ListTransactions(ctx context.Context, userID uuid.UUID) ([]*types.PaymentTransaction, error) {
  txs, err := ps.paymentRepo.ListByUser(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("failed to list transactions: %w", err)
  }
  return txs, nil
}
