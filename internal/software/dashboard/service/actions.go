package service

import (
	"context"
	"encoding/json"
	"strings"

	"transit-admin/internal/domain/driver"
	"transit-admin/internal/domain/fare"
	"transit-admin/internal/general/contracts"
	"transit-admin/internal/general/logger"
	"transit-admin/internal/ports"
)

// Operator actions follow the same shape: confirm the record exists, apply
// the mutation on the platform, and only after a confirmed success record
// the local audit trail and publish the broker event. Audit and publish
// failures are logged but never roll back an action the platform already
// accepted.

// ApproveApplication approves a pending driver application.
func (service *dashboardService) ApproveApplication(ctx context.Context, applicationID, operatorID string) (ports.ActionResult, error) {
	applicationID = strings.TrimSpace(applicationID)
	if applicationID == "" {
		return ports.ActionResult{}, ErrApplicationNotFound
	}

	applications, err := service.gateway.Applications(ctx)
	if err != nil {
		return ports.ActionResult{}, err
	}
	var app *driver.Application
	for i := range applications {
		if applications[i].ID == applicationID {
			app = &applications[i]
			break
		}
	}
	if app == nil {
		return ports.ActionResult{}, ErrApplicationNotFound
	}

	if err := service.gateway.ApproveApplication(ctx, applicationID); err != nil {
		return ports.ActionResult{}, err
	}

	service.recordAudit(ctx, operatorID, "application_approved", applicationID,
		map[string]any{"applicant": app.ApplicantName, "vehicle_type": app.VehicleType})

	service.publishEvent(ctx, contracts.RouteApplicationApproved, contracts.ApplicationApprovedEvent{
		Envelope:      service.envelope(ctx),
		ApplicationID: applicationID,
		OperatorID:    operatorID,
	})

	service.logger.Info(ctx, "application_approved", "Driver application approved",
		map[string]any{"application_id": applicationID})

	return ports.ActionResult{
		ID:      applicationID,
		Status:  "APPROVED",
		Message: "Application approved",
	}, nil
}

// AcceptPayment marks a subscription payment as received and stores a
// local receipt together with the audit entry in one transaction.
func (service *dashboardService) AcceptPayment(ctx context.Context, subscriptionID, operatorID string) (ports.ActionResult, error) {
	subscriptionID = strings.TrimSpace(subscriptionID)
	if subscriptionID == "" {
		return ports.ActionResult{}, ErrSubscriptionNotFound
	}

	subscriptions, err := service.gateway.Subscriptions(ctx)
	if err != nil {
		return ports.ActionResult{}, err
	}
	var sub *driver.Subscription
	for i := range subscriptions {
		if subscriptions[i].ID == subscriptionID {
			sub = &subscriptions[i]
			break
		}
	}
	if sub == nil {
		return ports.ActionResult{}, ErrSubscriptionNotFound
	}

	if err := service.gateway.AcceptPayment(ctx, subscriptionID); err != nil {
		return ports.ActionResult{}, err
	}

	amount := 0.0
	if sub.Price != nil {
		amount = *sub.Price
	}

	// receipt and audit entry commit together or not at all
	var receiptID string
	err = service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		id, err := service.receiptRepo.Save(txCtx, ports.PaymentReceipt{
			SubscriptionID: subscriptionID,
			DriverID:       sub.Driver.Key(),
			OperatorID:     operatorID,
			Amount:         amount,
			AcceptedAt:     service.now(),
		})
		if err != nil {
			return err
		}
		receiptID = id

		return service.auditRepo.Record(txCtx, ports.AuditEntry{
			OperatorID: operatorID,
			Action:     "payment_accepted",
			SubjectID:  subscriptionID,
			Details:    mustDetails(map[string]any{"receipt_id": id, "amount": amount}),
			OccurredAt: service.now(),
		})
	})
	if err != nil {
		service.logger.Error(ctx, "receipt_store_failed", "Payment accepted but receipt could not be stored", err,
			map[string]any{"subscription_id": subscriptionID})
	}

	service.publishEvent(ctx, contracts.RoutePaymentAccepted, contracts.PaymentAcceptedEvent{
		Envelope:       service.envelope(ctx),
		SubscriptionID: subscriptionID,
		ReceiptID:      receiptID,
		Amount:         amount,
		OperatorID:     operatorID,
	})

	service.logger.Info(ctx, "payment_accepted", "Subscription payment accepted",
		map[string]any{"subscription_id": subscriptionID, "receipt_id": receiptID})

	return ports.ActionResult{
		ID:      subscriptionID,
		Status:  "PAID",
		Message: "Payment accepted",
	}, nil
}

// UpdateFare changes the fare settings of one vehicle type.
func (service *dashboardService) UpdateFare(ctx context.Context, fareID string, update fare.Update, operatorID string) (ports.ActionResult, error) {
	fareID = strings.TrimSpace(fareID)
	if fareID == "" {
		return ports.ActionResult{}, ErrFareNotFound
	}
	if !update.Valid() {
		return ports.ActionResult{}, ErrInvalidFareUpdate
	}

	if err := service.gateway.UpdateFare(ctx, fareID, update); err != nil {
		return ports.ActionResult{}, err
	}

	service.recordAudit(ctx, operatorID, "fare_updated", fareID,
		map[string]any{"base_fare": update.BaseFare, "per_km": update.PerKM, "per_minute": update.PerMinute})

	service.publishEvent(ctx, contracts.RouteFareUpdated, contracts.FareUpdatedEvent{
		Envelope:   service.envelope(ctx),
		FareID:     fareID,
		BaseFare:   update.BaseFare,
		PerKM:      update.PerKM,
		PerMinute:  update.PerMinute,
		OperatorID: operatorID,
	})

	service.logger.Info(ctx, "fare_updated", "Fare settings updated",
		map[string]any{"fare_id": fareID})

	return ports.ActionResult{
		ID:      fareID,
		Status:  "UPDATED",
		Message: "Fare settings updated",
	}, nil
}

// ----- shared helpers -----

// recordAudit appends one audit entry in its own transaction, best-effort.
func (service *dashboardService) recordAudit(ctx context.Context, operatorID, action, subjectID string, details map[string]any) {
	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		return service.auditRepo.Record(txCtx, ports.AuditEntry{
			OperatorID: operatorID,
			Action:     action,
			SubjectID:  subjectID,
			Details:    mustDetails(details),
			OccurredAt: service.now(),
		})
	})
	if err != nil {
		service.logger.Error(ctx, "audit_record_failed", "Failed to record audit entry", err,
			map[string]any{"action": action, "subject_id": subjectID})
	}
}

// publishEvent marshals and publishes an action event, best-effort.
func (service *dashboardService) publishEvent(ctx context.Context, routingKey string, event any) {
	body, err := json.Marshal(event)
	if err != nil {
		service.logger.Error(ctx, "event_encode_failed", "Failed to encode action event", err,
			map[string]any{"routing_key": routingKey})
		return
	}
	if err := service.publisher.Publish(contracts.ExchangeAdminTopic, routingKey, body); err != nil {
		service.logger.Error(ctx, "event_publish_failed", "Failed to publish action event", err,
			map[string]any{"routing_key": routingKey})
	}
}

// envelope fills the shared message headers.
func (service *dashboardService) envelope(ctx context.Context) contracts.Envelope {
	return contracts.Envelope{
		CorrelationID: logger.RequestIDFrom(ctx),
		Producer:      "dashboard-service",
		SentAt:        service.now(),
	}
}

// mustDetails renders the details payload, falling back to "{}".
func mustDetails(details map[string]any) string {
	b, err := json.Marshal(details)
	if err != nil {
		return "{}"
	}
	return string(b)
}
