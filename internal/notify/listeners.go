package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// NotifyQueue 通知事件队列，由 notify-worker 消费
const NotifyQueue = "notify_queue"

// EmailListener 邮件通知监听器（模拟发送，只打日志）
type EmailListener struct{}

func (EmailListener) Name() string { return "email" }

func (EmailListener) Handle(event string, payload Payload) error {
	switch event {
	case EventUserCreated:
		zap.L().Info("send welcome email",
			zap.Any("email", payload["email"]))
	case EventOrderCreated:
		zap.L().Info("send order confirmation email",
			zap.Any("email", payload["user_email"]),
			zap.Any("order_id", payload["order_id"]),
			zap.Any("total", payload["total"]))
	case EventOrderCancelled:
		zap.L().Info("send order cancellation email",
			zap.Any("order_id", payload["order_id"]))
	default:
		zap.L().Debug("email listener ignores event", zap.String("event", event))
	}
	return nil
}

// SMSListener 短信通知监听器（模拟发送，只打日志）
type SMSListener struct{}

func (SMSListener) Name() string { return "sms" }

func (SMSListener) Handle(event string, payload Payload) error {
	switch event {
	case EventOrderCreated:
		zap.L().Info("send order confirmation sms",
			zap.Any("order_id", payload["order_id"]))
	default:
		zap.L().Debug("sms listener ignores event", zap.String("event", event))
	}
	return nil
}

// envelope 写入 MQ 的事件信封
type envelope struct {
	Event   string  `json:"event"`
	Payload Payload `json:"payload"`
}

// AMQPListener 把领域事件转发到 RabbitMQ，供进程外消费者处理
type AMQPListener struct {
	conn  *amqp.Connection
	queue string
}

// NewAMQPListener 创建 MQ 转发监听器
func NewAMQPListener(conn *amqp.Connection) *AMQPListener {
	return &AMQPListener{conn: conn, queue: NotifyQueue}
}

func (l *AMQPListener) Name() string { return "amqp" }

func (l *AMQPListener) Handle(event string, payload Payload) error {
	ch, err := l.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if _, err = ch.QueueDeclare(l.queue, true, false, false, false, nil); err != nil {
		return err
	}

	body, err := json.Marshal(&envelope{Event: event, Payload: payload})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return ch.PublishWithContext(
		ctx,
		"",
		l.queue,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
