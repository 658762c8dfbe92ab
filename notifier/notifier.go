// Package notifier records order status notifications for shoppers and
// optionally mirrors them by email.
package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/junaidrashid-git/storefront-api/realtime"
	"gorm.io/gorm"
)

const emailTimeout = 15 * time.Second

// StatusMessage is the text shown in the shopper's notification bell.
func StatusMessage(orderID uint, status models.OrderStatus) string {
	return fmt.Sprintf("Your order %d status has been updated to %q.", orderID, string(status))
}

// CreateStatusNotification appends an unread notification for userID.
func CreateStatusNotification(db *gorm.DB, userID string, orderID uint, status models.OrderStatus) (models.Notification, error) {
	n := models.Notification{
		UserID:  userID,
		OrderID: orderID,
		Message: StatusMessage(orderID, status),
		Read:    false,
	}
	if err := db.Create(&n).Error; err != nil {
		return models.Notification{}, fmt.Errorf("create notification: %w", err)
	}
	return n, nil
}

type Notifier struct {
	db     *gorm.DB
	hub    *realtime.Hub
	mailer Mailer
}

func New(db *gorm.DB, hub *realtime.Hub, mailer Mailer) *Notifier {
	if mailer == nil {
		mailer = NoopMailer{}
	}
	return &Notifier{db: db, hub: hub, mailer: mailer}
}

// OrderStatusChanged notifies the order's owner that its status is now order.Status.
// Orders without a user (guest checkouts) are skipped. Errors are logged, never returned:
// the status change has already been saved by the time this runs.
func (n *Notifier) OrderStatusChanged(order models.Order) *models.Notification {
	if order.UserID == nil || *order.UserID == "" {
		slog.Warn("order has no user id, skipping notification", "order_id", order.ID)
		return nil
	}

	note, err := CreateStatusNotification(n.db, *order.UserID, order.ID, order.Status)
	if err != nil {
		slog.Error("failed to create notification", "order_id", order.ID, "err", err)
		return nil
	}
	n.hub.Publish(realtime.NotificationsTopic(note.UserID), note)

	n.sendAsync(Email{
		To:      order.Email,
		Subject: "Order #" + strconv.FormatUint(uint64(order.ID), 10) + " is now " + string(order.Status),
		HTML:    fmt.Sprintf("<html><body><p>Dear %s,</p><p>%s</p><p>Best regards,<br>The Store Team</p></body></html>", order.Name, note.Message),
		Text:    fmt.Sprintf("Dear %s,\n\n%s\n\nBest regards,\nThe Store Team", order.Name, note.Message),
	})
	return &note
}

// OrderPlaced sends the checkout confirmation email.
func (n *Notifier) OrderPlaced(order models.Order) {
	total := strconv.FormatFloat(order.Total, 'f', 2, 64)
	n.sendAsync(Email{
		To:      order.Email,
		Subject: fmt.Sprintf("Order #%d Confirmation - Thank You for Your Purchase!", order.ID),
		HTML: fmt.Sprintf(`<html><body>
<p>Dear %s,</p>
<p>Thank you for your order! Your order #%d has been successfully placed.</p>
<ul><li>Order ID: %d</li><li>Total Amount: $%s</li></ul>
<p>We'll let you know when its status changes.</p>
</body></html>`, order.Name, order.ID, order.ID, total),
		Text: fmt.Sprintf("Dear %s,\n\nThank you for your order! Your order #%d has been successfully placed.\n\n"+
			"Order ID: %d\nTotal Amount: $%s\n\nWe'll let you know when its status changes.",
			order.Name, order.ID, order.ID, total),
	})
}

func (n *Notifier) sendAsync(msg Email) {
	if _, noop := n.mailer.(NoopMailer); noop || msg.To == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), emailTimeout)
		defer cancel()
		if err := n.mailer.Send(ctx, msg); err != nil {
			slog.Error("failed to send email", "to", msg.To, "err", err)
		}
	}()
}
