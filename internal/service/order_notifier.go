package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/campus-rent/internal/logger"
	"github.com/campus-rent/internal/models"
	"github.com/campus-rent/internal/queue"
	"github.com/campus-rent/internal/repository"
)

// OrderNotifier 下单成功后的通知端口，实现方的失败不影响订单
type OrderNotifier interface {
	NotifyOrderPlaced(ctx context.Context, order *models.RentalOrder) error
}

// NopOrderNotifier 不发送任何通知
type NopOrderNotifier struct{}

// NotifyOrderPlaced 实现 OrderNotifier
func (NopOrderNotifier) NotifyOrderPlaced(context.Context, *models.RentalOrder) error {
	return nil
}

// EmailOrderNotifier 给每位出借人与租借人发送邮件
type EmailOrderNotifier struct {
	sender   MailSender
	userRepo repository.UserRepository
}

// NewEmailOrderNotifier 创建邮件通知器
func NewEmailOrderNotifier(sender MailSender, userRepo repository.UserRepository) *EmailOrderNotifier {
	return &EmailOrderNotifier{sender: sender, userRepo: userRepo}
}

// NotifyOrderPlaced 按出借人分组发送邮件，再给租借人发送汇总邮件
//
// 单封邮件失败只记录日志并继续，返回值汇总全部失败。
func (n *EmailOrderNotifier) NotifyOrderPlaced(ctx context.Context, order *models.RentalOrder) error {
	if n == nil || n.sender == nil || order == nil {
		return nil
	}
	borrower := order.User
	if borrower == nil {
		user, err := n.userRepo.GetByID(order.UserID)
		if err != nil {
			return err
		}
		borrower = user
	}
	if borrower == nil {
		return ErrUserNotFound
	}

	ownerIDs := order.OwnerIDs()
	owners, err := n.userRepo.ListByIDs(ownerIDs)
	if err != nil {
		return err
	}
	ownerByID := make(map[uint]models.User, len(owners))
	for _, owner := range owners {
		ownerByID[owner.ID] = owner
	}

	var failures []error
	for _, ownerID := range ownerIDs {
		owner, ok := ownerByID[ownerID]
		if !ok {
			logger.Warnw("order_notify_owner_missing", "order_id", order.ID, "owner_id", ownerID)
			continue
		}
		subject, body := buildOwnerNotification(order, borrower, ownerID)
		if err := n.sender.SendMail(ctx, owner.Email, subject, body); err != nil {
			logger.Warnw("order_notify_owner_failed",
				"order_id", order.ID,
				"owner_id", ownerID,
				"error", err,
			)
			failures = append(failures, fmt.Errorf("owner %d: %w", ownerID, err))
		}
	}

	subject, body := buildBorrowerNotification(order, ownerIDs, ownerByID)
	if err := n.sender.SendMail(ctx, borrower.Email, subject, body); err != nil {
		logger.Warnw("order_notify_borrower_failed",
			"order_id", order.ID,
			"user_id", borrower.ID,
			"error", err,
		)
		failures = append(failures, fmt.Errorf("borrower %d: %w", borrower.ID, err))
	}
	return errors.Join(failures...)
}

// QueueOrderNotifier 将通知投递到异步队列，由 worker 发送
type QueueOrderNotifier struct {
	client *queue.Client
}

// NewQueueOrderNotifier 创建队列通知器
func NewQueueOrderNotifier(client *queue.Client) *QueueOrderNotifier {
	return &QueueOrderNotifier{client: client}
}

// NotifyOrderPlaced 入队下单通知任务
func (n *QueueOrderNotifier) NotifyOrderPlaced(_ context.Context, order *models.RentalOrder) error {
	if n == nil || n.client == nil || !n.client.Enabled() || order == nil {
		return nil
	}
	return n.client.EnqueueOrderPlacedNotify(queue.OrderPlacedNotifyPayload{OrderID: order.ID})
}

func buildOwnerNotification(order *models.RentalOrder, borrower *models.User, ownerID uint) (string, string) {
	var b strings.Builder
	fmt.Fprintf(&b, "You have a new rental for order %s.\n\n", order.OrderNo)
	b.WriteString("Items:\n")
	for _, item := range order.Items {
		if item.OwnerID != ownerID {
			continue
		}
		writeItemLine(&b, item)
	}
	b.WriteString("\nBorrower:\n")
	writeContact(&b, borrower)
	if order.ShippingAddress != nil {
		b.WriteString("\nPickup address:\n")
		writeAddress(&b, order.ShippingAddress)
	}
	return fmt.Sprintf("New rental request for order %s", order.OrderNo), b.String()
}

func buildBorrowerNotification(order *models.RentalOrder, ownerIDs []uint, owners map[uint]models.User) (string, string) {
	var b strings.Builder
	fmt.Fprintf(&b, "Your rental order %s is confirmed.\n\n", order.OrderNo)
	b.WriteString("Items:\n")
	for _, item := range order.Items {
		writeItemLine(&b, item)
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", order.TotalAmount.String())
	b.WriteString("\nLender contacts:\n")
	for _, ownerID := range ownerIDs {
		owner, ok := owners[ownerID]
		if !ok {
			continue
		}
		writeContact(&b, &owner)
	}
	if order.ShippingAddress != nil {
		b.WriteString("\nShipping address:\n")
		writeAddress(&b, order.ShippingAddress)
	}
	return fmt.Sprintf("Rental order %s confirmed", order.OrderNo), b.String()
}

func writeItemLine(b *strings.Builder, item models.RentalOrderItem) {
	fmt.Fprintf(b, "- %s x%d for %d month(s) at %s/month = %s\n",
		item.Title, item.Quantity, item.DurationMonths, item.PricePerMonth.String(), item.LineTotal().String())
}

func writeContact(b *strings.Builder, user *models.User) {
	if user == nil {
		return
	}
	name := strings.TrimSpace(user.DisplayName)
	if name == "" {
		name = user.Email
	}
	fmt.Fprintf(b, "- %s <%s>", name, user.Email)
	if phone := strings.TrimSpace(user.Phone); phone != "" {
		fmt.Fprintf(b, " %s", phone)
	}
	b.WriteString("\n")
}

func writeAddress(b *strings.Builder, address *models.Address) {
	b.WriteString(address.Line1 + "\n")
	if address.Line2 != "" {
		b.WriteString(address.Line2 + "\n")
	}
	fmt.Fprintf(b, "%s, %s %s\n%s\n", address.City, address.State, address.PostalCode, address.Country)
}
