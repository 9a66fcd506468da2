package main

import (
	"benritz/cashflows/internal/store"
	"benritz/cashflows/internal/types"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	ENV_BUCKET_NAME   = "CASHFLOWS_BUCKET_NAME"
	ENV_BUCKET_PREFIX = "CASHFLOWS_BUCKET_PREFIX"
)

// request is the body of a queued message.
type request struct {
	Source        string        `json:"source"`
	ValuationDate string        `json:"valuation_date"`
	Bonds         []*types.Bond `json:"bonds"`
}

func parseRequest(body string) (*store.PricedBonds, error) {
	var req request
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	if len(req.Bonds) == 0 {
		return nil, fmt.Errorf("invalid request: no bonds")
	}

	if req.Source == "" {
		req.Source = "sqs"
	}

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if req.ValuationDate != "" {
		ts, err := time.Parse("2006-01-02", req.ValuationDate)
		if err != nil {
			return nil, fmt.Errorf("invalid valuation date: %w", err)
		}
		date = ts
	}

	priced := store.NewPricedBonds(req.Source, date)
	for _, b := range req.Bonds {
		if b == nil {
			continue
		}
		b.Source = req.Source
		b.ValuationDate = date
		if b.Model == "" {
			b.Model = types.FlatYield
		}

		if err := priced.AddBond(b); err != nil {
			fmt.Printf("Failed to price %s: %v\n", b.ID, err)
		}
	}

	if len(priced.Bonds) == 0 {
		return nil, types.ErrDataUnavailable
	}

	return priced, nil
}

type handler struct {
	client store.PutObjectAPI
	path   *store.S3Path
}

func (h *handler) priceMessage(ctx context.Context, rec events.SQSMessage) error {
	priced, err := parseRequest(rec.Body)
	if err != nil {
		return err
	}

	outPath, err := store.StoreToS3(ctx, priced, h.client, h.path)
	if err != nil {
		return err
	}

	fmt.Printf("Stored %d priced bonds to %s\n", len(priced.Bonds), outPath)

	return nil
}

func (h *handler) handle(ctx context.Context, request events.SQSEvent) (events.SQSEventResponse, error) {
	resp := events.SQSEventResponse{}

	for _, rec := range request.Records {
		if err := h.priceMessage(ctx, rec); err != nil {
			fmt.Printf("Failed to price message %s: %v\n", rec.MessageId, err)
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{
				ItemIdentifier: rec.MessageId,
			})
		}
	}

	return resp, nil
}

func newHandler(ctx context.Context) (*handler, error) {
	bucketName := os.Getenv(ENV_BUCKET_NAME)
	if bucketName == "" {
		return nil, fmt.Errorf("%s is not set", ENV_BUCKET_NAME)
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %v", err)
	}

	return &handler{
		client: s3.NewFromConfig(cfg),
		path: &store.S3Path{
			Bucket: bucketName,
			Prefix: os.Getenv(ENV_BUCKET_PREFIX),
		},
	}, nil
}

func main() {
	h, err := newHandler(context.Background())
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}

	lambda.Start(h.handle)
}
