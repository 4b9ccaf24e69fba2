package main

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/example/goshop/internal/config"
	"github.com/example/goshop/internal/infra/mq"
	"github.com/example/goshop/internal/logger"
	"github.com/example/goshop/internal/notify"
	"github.com/example/goshop/internal/service"
)

// envelope 与 AMQPListener 写入队列的结构保持一致
type envelope struct {
	Event   string         `json:"event"`
	Payload notify.Payload `json:"payload"`
}

func main() {
	cfg, err := config.Load("./config")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.Init()

	mqConn := mq.Init(&cfg.RabbitMQ)

	// 进程外投递：在 worker 里重建本地监听器做实际发送（这里是日志模拟）
	dispatcher := notify.NewDispatcher()
	dispatcher.Subscribe(notify.EmailListener{})
	dispatcher.Subscribe(notify.SMSListener{})

	ch, err := mqConn.Channel()
	if err != nil {
		log.Fatalf("failed to open channel: %v", err)
	}
	defer ch.Close()

	if _, err = ch.QueueDeclare(notify.NotifyQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("failed to declare queue: %v", err)
	}

	// 手动确认模式（auto-ack=false）
	msgs, err := ch.Consume(notify.NotifyQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("failed to consume: %v", err)
	}

	zap.L().Info("notify worker started, waiting for events")

	for d := range msgs {
		handleDelivery(dispatcher, d)
	}
}

func handleDelivery(dispatcher *notify.Dispatcher, d amqp.Delivery) {
	var e envelope
	if err := json.Unmarshal(d.Body, &e); err != nil {
		zap.L().Error("invalid event message", zap.Error(err))
		service.GetMonitor().RecordWorkerFailed()
		// 消息格式错误，拒绝并丢弃
		_ = d.Nack(false, false)
		return
	}

	// 监听器失败只记录日志，事件本身消费成功
	dispatcher.Notify(e.Event, e.Payload)
	service.GetMonitor().RecordWorkerProcessed()

	if err := d.Ack(false); err != nil {
		zap.L().Error("failed to ack message", zap.Error(err))
	}
}
