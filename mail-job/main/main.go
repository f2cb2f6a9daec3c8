package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"varal-dos-sonhos/config"
	"varal-dos-sonhos/connection"
	"varal-dos-sonhos/notify"
)

// jobs delivered per scheduled run
const batchSize = 100

func handler(ctx context.Context, event events.CloudWatchEvent) (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}

	client, err := connection.NewRedis(ctx, cfg.RedisHost)
	if err != nil {
		return "", err
	}
	defer client.Close()

	var next notify.Notifier = notify.NewMailer(cfg.Mail)
	if cfg.Mail.ArchiveBucket != "" {
		s3Client, err := notify.NewS3Client(ctx)
		if err != nil {
			return "", err
		}
		next = notify.NewArchive(next, s3Client, cfg.Mail.ArchiveBucket)
	}

	sent, err := notify.NewQueue(client, cfg.Mail.Queue).Drain(ctx, next, batchSize)
	log.Printf("Mail job delivered %d message(s)", sent)
	if err != nil {
		log.Printf("Error draining mail queue: %v", err)
		return "Mail job failed", err
	}
	return "Mail job complete", nil
}

func main() {
	lambda.Start(handler)
}
