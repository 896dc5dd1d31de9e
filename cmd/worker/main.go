package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"github.com/intragalactic-stranger/Adaptive-CV/internal/bootstrap"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/queue"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/shared/config"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/shared/telemetry"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/versions"
)

const (
	defaultVisibilitySeconds  = 300
	defaultWorkerConcurrency  = 2
	defaultShutdownTimeoutSec = 30
)

func main() {
	cfg := config.Load()

	queueURL := strings.TrimSpace(cfg.RenderQueueURL)
	if queueURL == "" {
		log.Fatal("RENDER_QUEUE_URL is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	visibilitySeconds := envInt("SQS_VISIBILITY_TIMEOUT_SECONDS", defaultVisibilitySeconds)
	concurrency := envInt("WORKER_CONCURRENCY", defaultWorkerConcurrency)
	shutdownTimeout := time.Duration(envInt("SHUTDOWN_TIMEOUT_SECONDS", defaultShutdownTimeoutSec)) * time.Second

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if cfg.AWSRegion != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.AWSRegion))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		log.Fatalf("load aws config: %v", err)
	}
	var sqsClient sqsAPI = sqs.NewFromConfig(awsCfg)

	// The worker renders inline; a queue on the service would loop forever.
	cfg.RenderQueueURL = ""
	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap build: %v", err)
	}

	sem := make(chan struct{}, max(1, concurrency))
	var wg sync.WaitGroup

	log.Printf("worker started queue=%s concurrency=%d visibility=%ds", queueURL, concurrency, visibilitySeconds)

pollLoop:
	for {
		select {
		case <-ctx.Done():
			break pollLoop
		default:
		}

		resp, err := sqsClient.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(queueURL),
			MaxNumberOfMessages: 10,
			WaitTimeSeconds:     20,
			VisibilityTimeout:   int32(visibilitySeconds),
		})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
				break pollLoop
			}
			log.Printf("receive message: %v", err)
			continue
		}

		for _, msg := range resp.Messages {
			select {
			case <-ctx.Done():
				break pollLoop
			case sem <- struct{}{}:
			}
			wg.Add(1)
			go func(m sqstypes.Message) {
				defer wg.Done()
				defer func() { <-sem }()
				handleMessage(ctx, app, sqsClient, queueURL, m)
			}(msg)
		}
	}

	log.Printf("shutdown requested, waiting up to %s for in-flight jobs", shutdownTimeout)
	waitDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(waitDone)
	}()
	select {
	case <-waitDone:
	case <-time.After(shutdownTimeout):
		log.Printf("shutdown timeout reached; exiting with in-flight jobs")
	}
}

type sqsAPI interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

func handleMessage(ctx context.Context, app *bootstrap.App, client sqsAPI, queueURL string, msg sqstypes.Message) {
	body := aws.ToString(msg.Body)

	decoded, err := queue.DecodeMessage([]byte(body))
	if err != nil {
		telemetry.Error("worker.render.decode_failed", map[string]any{
			"sqs_message_id": aws.ToString(msg.MessageId),
			"error":          err.Error(),
		})
		deleteMessage(ctx, client, queueURL, msg, "")
		return
	}

	fields := map[string]any{
		"version_id":     decoded.VersionID,
		"sqs_message_id": aws.ToString(msg.MessageId),
	}
	if decoded.RequestID != "" {
		fields["request_id"] = decoded.RequestID
	}
	telemetry.Info("worker.render.received", fields)

	if err := app.Versions.RenderArtifactByID(ctx, decoded.VersionID); err != nil {
		if errors.Is(err, versions.ErrNotFound) || errors.Is(err, versions.ErrNoEditableData) {
			// The version is gone or has nothing to render; retrying cannot
			// succeed.
			fields["error"] = err.Error()
			telemetry.Error("worker.render.unrecoverable", fields)
			deleteMessage(ctx, client, queueURL, msg, decoded.VersionID)
			return
		}
		fields["error"] = err.Error()
		telemetry.Error("worker.render.failed", fields)
		return
	}

	if deleteMessage(ctx, client, queueURL, msg, decoded.VersionID) {
		telemetry.Info("worker.render.completed", fields)
	}
}

func deleteMessage(ctx context.Context, client sqsAPI, queueURL string, msg sqstypes.Message, versionID string) bool {
	receipt := aws.ToString(msg.ReceiptHandle)
	if receipt == "" {
		telemetry.Error("worker.render.delete_failed", map[string]any{
			"version_id": versionID,
			"error":      "missing receipt handle",
		})
		return false
	}
	if _, err := client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(queueURL),
		ReceiptHandle: aws.String(receipt),
	}); err != nil {
		telemetry.Error("worker.render.delete_failed", map[string]any{
			"version_id": versionID,
			"error":      err.Error(),
		})
		return false
	}
	return true
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return val
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
